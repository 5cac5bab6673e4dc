package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reportDatamodel "github.com/silcast/crane-admin/internal/core/datamodel/servicereport"
	"github.com/silcast/crane-admin/internal/servicereport"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) servicereport.RepositoryAPI {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) List(ctx context.Context) ([]*reportDatamodel.Report, error) {
	var reports []*reportDatamodel.Report
	err := r.db.WithContext(ctx).
		Preload("Grua").Preload("Operador").
		Order("fecha DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*reportDatamodel.Report, error) {
	var report reportDatamodel.Report
	err := r.db.WithContext(ctx).Preload("Grua").Preload("Operador").Where("id = ?", id).First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) FolioTaken(ctx context.Context, folio string, exceptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&reportDatamodel.Report{}).
		Where("folio = ? AND id <> ?", folio, exceptID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReportRepository) Create(ctx context.Context, report *reportDatamodel.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

func (r *ReportRepository) Update(ctx context.Context, report *reportDatamodel.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(report).Error
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reportDatamodel.Report{}, id).Error
}

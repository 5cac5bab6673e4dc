package supplier_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSupplier(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Supplier Suite")
}

package domain

import (
	"testing"

	"hostelcore/testutil"
)

func TestDomainDoesNotImportInternal(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.Any(
		testutil.InternalImportForbidden,
		testutil.PrefixForbidden("github.com/gin-gonic/gin", "gorm.io/gorm", "github.com/jackc/pgx/v5"),
	), "domain types stay free of implementation packages")
}

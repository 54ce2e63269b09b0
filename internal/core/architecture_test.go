package core

import (
	"testing"

	"hostelcore/testutil"
)

func TestCoreDoesNotImportTransport(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.PrefixForbidden(
		"hostelcore/internal/adapters",
		"github.com/gin-gonic/gin",
		"net/http",
	), "the service is transport agnostic")
}

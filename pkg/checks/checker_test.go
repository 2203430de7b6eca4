package checks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/adminctl/pkg/config"
	"github.com/opskit/adminctl/pkg/validation"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	cfg := config.Default()
	cfg.ExportRoot = "/srv/adminctl/exports"
	cfg.MaxDelayMs = 600000
	checker, err := New(cfg)
	require.NoError(t, err)
	return checker
}

func TestNewRejectsRelativeRoot(t *testing.T) {
	cfg := config.Default()
	cfg.ExportRoot = "exports"
	_, err := New(cfg)
	require.Error(t, err)
}

func TestCheckerValidateObjectID(t *testing.T) {
	checker := newTestChecker(t)

	id, err := checker.ValidateObjectID("507f1f77bcf86cd799439011")
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id)

	_, err = checker.ValidateObjectID("507f1f77bcf86cd79943901")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "object ID")
}

func TestCheckerValidateEmail(t *testing.T) {
	checker := newTestChecker(t)

	email, err := checker.ValidateEmail("ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", email)

	_, err = checker.ValidateEmail("not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestCheckerValidateDate(t *testing.T) {
	checker := newTestChecker(t)

	date, err := checker.ValidateDate("2024-06-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-15", date)

	_, err = checker.ValidateDate("2024-13-01")
	require.Error(t, err)
}

func TestCheckerValidateDelayUsesConfiguredCeiling(t *testing.T) {
	cfg := config.Default()
	cfg.ExportRoot = "/srv/adminctl/exports"
	cfg.MaxDelayMs = 1000
	checker, err := New(cfg)
	require.NoError(t, err)

	n, err := checker.ValidateDelay("500")
	require.NoError(t, err)
	assert.Equal(t, 500, n)

	_, err = checker.ValidateDelay("1001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, validation.ErrOutOfRange))
	assert.Contains(t, err.Error(), "1000")
}

func TestCheckerSanitizeExportPath(t *testing.T) {
	checker := newTestChecker(t)

	got, err := checker.SanitizeExportPath("./monthly/users.csv")
	require.NoError(t, err)
	assert.Equal(t, "monthly/users.csv", got)

	_, err = checker.SanitizeExportPath("../outside.csv")
	require.Error(t, err)
	var pathErr *validation.PathError
	assert.True(t, errors.As(err, &pathErr))

	_, err = checker.SanitizeExportPath("/etc/passwd")
	require.Error(t, err)
}

func TestCheckerValidateAPIResponse(t *testing.T) {
	checker := newTestChecker(t)

	good := []byte(`{"data":{"user":{"id":"507f1f77bcf86cd799439011","email":"a@b.co"}}}`)
	require.NoError(t, checker.ValidateAPIResponse(good, "fetch_user"))

	missing := []byte(`{"data":{"user":{"id":"507f1f77bcf86cd799439011"}}}`)
	err := checker.ValidateAPIResponse(missing, "fetch_user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data.user.email")

	// Unconfigured call sites carry no shape requirements.
	require.NoError(t, checker.ValidateAPIResponse([]byte(`{}`), "unknown_site"))
}

func TestCheckerValidateCSVHeaders(t *testing.T) {
	checker := newTestChecker(t)

	require.NoError(t, checker.ValidateCSVHeaders(
		[]string{"ID", "Email", "Name", "Role", "Created_At"}, "import"))

	err := checker.ValidateCSVHeaders([]string{"id", "email"}, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
	assert.Contains(t, err.Error(), "role")
	assert.Contains(t, err.Error(), "created_at")
}

func TestCheckerPathStats(t *testing.T) {
	checker := newTestChecker(t)

	_, _ = checker.SanitizeExportPath("ok.csv")
	_, _ = checker.SanitizeExportPath("../bad.csv")

	validations, rejections := checker.PathStats()
	assert.Equal(t, uint64(2), validations)
	assert.Equal(t, uint64(1), rejections)
}

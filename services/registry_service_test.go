package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/blogem/lanauthgate/logging"
	"github.com/blogem/lanauthgate/models"
	"github.com/blogem/lanauthgate/repositories"
	"github.com/blogem/lanauthgate/repositories/mocks"
)

// RegistryServiceTestSuite tests the authorization registry against mocked storage
type RegistryServiceTestSuite struct {
	suite.Suite
	ctx           context.Context
	service       RegistryService
	mockRuleRepo  *mocks.MockRuleRepository
	mockAuditRepo *mocks.MockAuditRepository
	recorded      []*models.AuditEntry
}

// SetupTest sets up the test suite before each test
func (suite *RegistryServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.mockRuleRepo = mocks.NewMockRuleRepository(suite.T())
	suite.mockAuditRepo = mocks.NewMockAuditRepository(suite.T())
	suite.recorded = nil

	suite.mockAuditRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Run(func(ctx context.Context, entry *models.AuditEntry) {
			suite.recorded = append(suite.recorded, entry)
		}).
		Return(nil).
		Maybe()

	audit := NewAuditService(suite.mockAuditRepo, nil, nil, logging.Nop())
	suite.service = NewRegistryService(suite.mockRuleRepo, audit, nil, logging.Nop())
}

func (suite *RegistryServiceTestSuite) lastAction() models.ActionKind {
	require.NotEmpty(suite.T(), suite.recorded)
	return suite.recorded[len(suite.recorded)-1].Action
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/api/x", NormalizePath("api/x"))
	assert.Equal(t, "/api/x", NormalizePath("/api/x"))
	assert.Equal(t, "/", NormalizePath(""))
	assert.Equal(t, "/api/x", NormalizePath(" api/x "))
	assert.Equal(t, "/api/x", NormalizePath("\t/api/x\n"))
}

// TestAddRule_NormalizesPath tests that a path without leading slash is stored canonically
func (suite *RegistryServiceTestSuite) TestAddRule_NormalizesPath() {
	suite.mockRuleRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(r *models.Rule) bool {
		return r.Path == "/api/x" && r.Enabled && r.Description == "demo"
	})).Run(func(ctx context.Context, rule *models.Rule) {
		rule.ID = 7
	}).Return(nil)

	rule, err := suite.service.AddRule(suite.ctx, &models.RuleForm{Path: "api/x", Description: "demo"})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(7), rule.ID)
	assert.Equal(suite.T(), "/api/x", rule.Path)
	assert.Equal(suite.T(), models.ActionAddAPI, suite.lastAction())
}

// TestAddRule_EmptyPath tests that a blank path is rejected before storage is touched
func (suite *RegistryServiceTestSuite) TestAddRule_EmptyPath() {
	_, err := suite.service.AddRule(suite.ctx, &models.RuleForm{Path: "   "})

	assert.True(suite.T(), IsKind(err, KindValidation))
	assert.Empty(suite.T(), suite.recorded)
}

// TestAddRule_Duplicate tests that a duplicate path maps to a conflict
func (suite *RegistryServiceTestSuite) TestAddRule_Duplicate() {
	suite.mockRuleRepo.EXPECT().Create(mock.Anything, mock.Anything).
		Return(repositories.ErrDuplicate)

	_, err := suite.service.AddRule(suite.ctx, &models.RuleForm{Path: "/api/x"})

	assert.True(suite.T(), IsKind(err, KindConflict))
	assert.Empty(suite.T(), suite.recorded)
}

// TestUpdateRule_ToggleIsAuditedAsToggle tests that an enabled-only patch records TOGGLE_API
func (suite *RegistryServiceTestSuite) TestUpdateRule_ToggleIsAuditedAsToggle() {
	enabled := false
	patch := models.RulePatch{Enabled: &enabled}
	suite.mockRuleRepo.EXPECT().Update(mock.Anything, int64(3), patch).
		Return(&models.Rule{ID: 3, Path: "/a", Enabled: false, CallCount: 5}, nil)

	rule, err := suite.service.UpdateRule(suite.ctx, 3, patch)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), rule.CallCount)
	assert.Equal(suite.T(), models.ActionToggleAPI, suite.lastAction())
}

// TestUpdateRule_NormalizesPath tests that a patched path is normalized before storage
func (suite *RegistryServiceTestSuite) TestUpdateRule_NormalizesPath() {
	suite.mockRuleRepo.EXPECT().Update(mock.Anything, int64(3), mock.MatchedBy(func(p models.RulePatch) bool {
		return p.Path != nil && *p.Path == "/b"
	})).Return(&models.Rule{ID: 3, Path: "/b"}, nil)

	path := "b"
	_, err := suite.service.UpdateRule(suite.ctx, 3, models.RulePatch{Path: &path})

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ActionUpdateAPI, suite.lastAction())
}

// TestUpdateRule_BlankPath tests that a blank patched path is a validation error
func (suite *RegistryServiceTestSuite) TestUpdateRule_BlankPath() {
	path := " "
	_, err := suite.service.UpdateRule(suite.ctx, 3, models.RulePatch{Path: &path})

	assert.True(suite.T(), IsKind(err, KindValidation))
}

// TestUpdateRule_PathTooLong tests that the path length limit also applies to updates
func (suite *RegistryServiceTestSuite) TestUpdateRule_PathTooLong() {
	path := "/" + strings.Repeat("a", models.MaxPathLength)
	_, err := suite.service.UpdateRule(suite.ctx, 3, models.RulePatch{Path: &path})

	assert.True(suite.T(), IsKind(err, KindValidation))
	assert.Empty(suite.T(), suite.recorded)
}

// TestUpdateRule_NotFound tests that a missing rule maps to not found
func (suite *RegistryServiceTestSuite) TestUpdateRule_NotFound() {
	enabled := true
	suite.mockRuleRepo.EXPECT().Update(mock.Anything, int64(99), mock.Anything).
		Return(nil, repositories.ErrNotFound)

	_, err := suite.service.UpdateRule(suite.ctx, 99, models.RulePatch{Enabled: &enabled})

	assert.True(suite.T(), IsKind(err, KindNotFound))
}

// TestDeleteRule tests that a delete is audited with the removed path
func (suite *RegistryServiceTestSuite) TestDeleteRule() {
	suite.mockRuleRepo.EXPECT().Delete(mock.Anything, int64(4)).
		Return(&models.Rule{ID: 4, Path: "/gone"}, nil)

	_, err := suite.service.DeleteRule(suite.ctx, 4)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ActionDeleteAPI, suite.lastAction())
	assert.Contains(suite.T(), suite.recorded[0].Details, "/gone")
}

// TestCheck_UnknownPath tests that an unknown path is denied without error
func (suite *RegistryServiceTestSuite) TestCheck_UnknownPath() {
	suite.mockRuleRepo.EXPECT().CheckAndCount(mock.Anything, "/api/none").
		Return(nil, repositories.ErrNotFound)

	result, err := suite.service.Check(suite.ctx, "api/none", models.ActionAPICheck)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/api/none", result.Path)
	assert.False(suite.T(), result.Authorized)
	assert.Equal(suite.T(), int64(0), result.CallCount)
	assert.Equal(suite.T(), models.ActionAPICheck, suite.lastAction())
	assert.Equal(suite.T(), "path=api/none, authorized=false", suite.recorded[0].Details)
}

// TestCheck_MatchesAddedForm tests that a padded path checks against the same rule AddRule stores
func (suite *RegistryServiceTestSuite) TestCheck_MatchesAddedForm() {
	suite.mockRuleRepo.EXPECT().Create(mock.Anything, mock.MatchedBy(func(r *models.Rule) bool {
		return r.Path == "/api/x"
	})).Return(nil)
	suite.mockRuleRepo.EXPECT().CheckAndCount(mock.Anything, "/api/x").
		Return(&models.CheckResult{Path: "/api/x", Authorized: true, Enabled: true, CallCount: 1}, nil)

	_, err := suite.service.AddRule(suite.ctx, &models.RuleForm{Path: " api/x "})
	require.NoError(suite.T(), err)

	result, err := suite.service.Check(suite.ctx, " api/x ", models.ActionAPICheck)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "/api/x", result.Path)
	assert.True(suite.T(), result.Authorized)
}

// TestCheck_RecordsGetVariant tests that the query-string form is audited separately
func (suite *RegistryServiceTestSuite) TestCheck_RecordsGetVariant() {
	suite.mockRuleRepo.EXPECT().CheckAndCount(mock.Anything, "/api/a").
		Return(&models.CheckResult{Path: "/api/a", Authorized: true, Enabled: true, CallCount: 1}, nil)

	result, err := suite.service.Check(suite.ctx, "/api/a", models.ActionAPICheckGet)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Authorized)
	assert.Equal(suite.T(), models.ActionAPICheckGet, suite.lastAction())
}

// TestCheck_MissingPath tests that an empty path is rejected
func (suite *RegistryServiceTestSuite) TestCheck_MissingPath() {
	_, err := suite.service.Check(suite.ctx, "", models.ActionAPICheck)

	assert.True(suite.T(), IsKind(err, KindValidation))
}

// TestCheck_StorageFailure tests that storage failures surface as internal errors
func (suite *RegistryServiceTestSuite) TestCheck_StorageFailure() {
	suite.mockRuleRepo.EXPECT().CheckAndCount(mock.Anything, "/a").
		Return(nil, errors.New("disk I/O error"))

	_, err := suite.service.Check(suite.ctx, "/a", models.ActionAPICheck)

	assert.True(suite.T(), IsKind(err, KindInternal))
	assert.Empty(suite.T(), suite.recorded)
}

// TestCheck_AuditFailureDoesNotFailCheck tests that the check result survives a failed audit write
func (suite *RegistryServiceTestSuite) TestCheck_AuditFailureDoesNotFailCheck() {
	auditRepo := mocks.NewMockAuditRepository(suite.T())
	auditRepo.EXPECT().Create(mock.Anything, mock.Anything).Return(errors.New("database is locked"))
	service := NewRegistryService(suite.mockRuleRepo, NewAuditService(auditRepo, nil, nil, logging.Nop()), nil, logging.Nop())

	suite.mockRuleRepo.EXPECT().CheckAndCount(mock.Anything, "/a").
		Return(&models.CheckResult{Path: "/a", Authorized: true, Enabled: true, CallCount: 2}, nil)

	result, err := service.Check(suite.ctx, "/a", models.ActionAPICheck)

	require.NoError(suite.T(), err)
	assert.True(suite.T(), result.Authorized)
}

// TestResetAllCallCounts tests the bulk reset
func (suite *RegistryServiceTestSuite) TestResetAllCallCounts() {
	suite.mockRuleRepo.EXPECT().ResetAllCallCounts(mock.Anything).Return(int64(3), nil)

	n, err := suite.service.ResetAllCallCounts(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), n)
	assert.Equal(suite.T(), models.ActionResetCallCount, suite.lastAction())
}

// TestExport tests that export is audited with the item count
func (suite *RegistryServiceTestSuite) TestExport() {
	suite.mockRuleRepo.EXPECT().Export(mock.Anything).Return([]models.ExportItem{
		{Path: "/a", Enabled: true},
		{Path: "/b"},
	}, nil)

	items, err := suite.service.Export(suite.ctx)

	require.NoError(suite.T(), err)
	assert.Len(suite.T(), items, 2)
	assert.Equal(suite.T(), models.ActionExportConfig, suite.lastAction())
	assert.Equal(suite.T(), "count=2", suite.recorded[0].Details)
}

// TestImport_MixedItems tests per-item validation with 1-based error positions
func (suite *RegistryServiceTestSuite) TestImport_MixedItems() {
	suite.mockRuleRepo.EXPECT().UpsertBatch(mock.Anything, []models.ExportItem{
		{Path: "/a", Enabled: true},
		{Path: "/c", Enabled: false, Description: "third"},
	}).Return([]error{nil, nil}, 2, nil)

	data := []byte(`[{"api_path":"/a"},{"api_path":"b"},{"api_path":"/c","enabled":0,"description":"third"},"x",{"enabled":true}]`)
	result, err := suite.service.Import(suite.ctx, data)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, result.ImportedCount)
	assert.Equal(suite.T(), 3, result.ErrorCount)
	assert.Equal(suite.T(), 2, result.TotalInDatabase)
	assert.Equal(suite.T(), []string{
		"Item 2: API path must start with '/': b",
		"Item 4: not an object",
		"Item 5: missing api_path field",
	}, result.Errors)
	assert.Contains(suite.T(), result.Message, "API import completed: success 2, failed 3")
	assert.Equal(suite.T(), models.ActionImportConfig, suite.lastAction())
}

// TestImport_PathRules tests that imported paths are trimmed and length checked
func (suite *RegistryServiceTestSuite) TestImport_PathRules() {
	suite.mockRuleRepo.EXPECT().UpsertBatch(mock.Anything, []models.ExportItem{
		{Path: "/a", Enabled: true},
	}).Return([]error{nil}, 1, nil)

	long := "/" + strings.Repeat("a", models.MaxPathLength)
	data := []byte(`[{"api_path":" /a "},{"api_path":"` + long + `"}]`)
	result, err := suite.service.Import(suite.ctx, data)

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.ImportedCount)
	assert.Equal(suite.T(), []string{"Item 2: " + models.PathTooLongMessage}, result.Errors)
}

// TestImport_NotAnArray tests that a non-array document is rejected as a whole
func (suite *RegistryServiceTestSuite) TestImport_NotAnArray() {
	_, err := suite.service.Import(suite.ctx, []byte(`{"api_path":"/a"}`))
	assert.True(suite.T(), IsKind(err, KindValidation))

	_, err = suite.service.Import(suite.ctx, []byte(`not json`))
	assert.True(suite.T(), IsKind(err, KindValidation))

	_, err = suite.service.Import(suite.ctx, []byte(`null`))
	assert.True(suite.T(), IsKind(err, KindValidation))
}

// TestImport_AllInvalid tests that storage is only counted when nothing is valid
func (suite *RegistryServiceTestSuite) TestImport_AllInvalid() {
	suite.mockRuleRepo.EXPECT().Count(mock.Anything).Return(4, nil)

	result, err := suite.service.Import(suite.ctx, []byte(`[{"api_path":42}]`))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, result.ImportedCount)
	assert.Equal(suite.T(), 1, result.ErrorCount)
	assert.Equal(suite.T(), 4, result.TotalInDatabase)
	assert.Equal(suite.T(), []string{"Item 1: api_path must be a string"}, result.Errors)
}

// TestImport_ErrorsAreCapped tests that at most ten item errors are returned
func (suite *RegistryServiceTestSuite) TestImport_ErrorsAreCapped() {
	suite.mockRuleRepo.EXPECT().Count(mock.Anything).Return(0, nil)

	result, err := suite.service.Import(suite.ctx, []byte(`[1,2,3,4,5,6,7,8,9,10,11,12]`))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 12, result.ErrorCount)
	assert.Len(suite.T(), result.Errors, 10)
}

// TestImport_StorageItemFailure tests that a failed upsert is reported at its input position
func (suite *RegistryServiceTestSuite) TestImport_StorageItemFailure() {
	suite.mockRuleRepo.EXPECT().UpsertBatch(mock.Anything, mock.Anything).
		Return([]error{nil, errors.New("database error: constraint failed")}, 1, nil)

	result, err := suite.service.Import(suite.ctx, []byte(`["bad",{"api_path":"/a"},{"api_path":"/b"}]`))

	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, result.ImportedCount)
	assert.Equal(suite.T(), 2, result.ErrorCount)
	assert.Equal(suite.T(), "Item 3: database error: constraint failed", result.Errors[1])
}

// TestSeedExamples tests that the example rules are inserted without overwriting
func (suite *RegistryServiceTestSuite) TestSeedExamples() {
	suite.mockRuleRepo.EXPECT().InsertMissing(mock.Anything, ExampleRules).Return(nil)

	assert.NoError(suite.T(), suite.service.SeedExamples(suite.ctx))
}

func TestRegistryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceTestSuite))
}

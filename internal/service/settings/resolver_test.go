package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitecrew/workforce-backend-go/internal/config"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/setting"
)

type memorySettingRepo struct {
	values map[string]setting.Setting
	getErr error
}

func newMemorySettingRepo() *memorySettingRepo {
	return &memorySettingRepo{values: make(map[string]setting.Setting)}
}

func (m *memorySettingRepo) Get(_ context.Context, companyID string, key string) (setting.Setting, error) {
	if m.getErr != nil {
		return setting.Setting{}, m.getErr
	}
	s, ok := m.values[companyID+"/"+key]
	if !ok {
		return setting.Setting{}, setting.ErrSettingNotFound
	}
	return s, nil
}

func (m *memorySettingRepo) List(_ context.Context, companyID string) ([]setting.Setting, error) {
	var out []setting.Setting
	for _, s := range m.values {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySettingRepo) Upsert(_ context.Context, s setting.Setting) (setting.Setting, error) {
	m.values[s.CompanyID+"/"+s.Key] = s
	return s, nil
}

func (m *memorySettingRepo) Delete(_ context.Context, companyID string, key string) error {
	if _, ok := m.values[companyID+"/"+key]; !ok {
		return setting.ErrSettingNotFound
	}
	delete(m.values, companyID+"/"+key)
	return nil
}

func (m *memorySettingRepo) store(companyID, key, value string, valueType setting.ValueType) {
	m.values[companyID+"/"+key] = setting.Setting{
		CompanyID: companyID,
		Key:       key,
		Value:     value,
		Type:      valueType,
	}
}

func testDefaults() config.PayrollConfig {
	return config.PayrollConfig{
		OvertimeMultiplier:     1.5,
		DailyOvertimeThreshold: 8,
		StandardWorkdayHours:   8,
		RoundingPrecision:      2,
		DefaultPeriodType:      "weekly",
		ThresholdPolicy:        "per_interval",
	}
}

func TestResolver_TypedFallbacks(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	// absent keys fall back
	b, err := r.Bool(ctx, "c1", "feature.x", true)
	require.NoError(t, err)
	assert.True(t, b)
	i, err := r.Int(ctx, "c1", "some.int", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, i)
	f, err := r.Float(ctx, "c1", "some.float", 1.25)
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)
	str, err := r.String(ctx, "c1", "some.string", "dflt")
	require.NoError(t, err)
	assert.Equal(t, "dflt", str)

	// stored values win
	repo.store("c1", "feature.x", "false", setting.TypeBool)
	repo.store("c1", "some.int", "7", setting.TypeInt)
	repo.store("c1", "some.float", "2.5", setting.TypeFloat)
	repo.store("c1", "some.string", "stored", setting.TypeString)

	b, err = r.Bool(ctx, "c1", "feature.x", true)
	require.NoError(t, err)
	assert.False(t, b)
	i, err = r.Int(ctx, "c1", "some.int", 42)
	require.NoError(t, err)
	assert.Equal(t, 7, i)
	f, err = r.Float(ctx, "c1", "some.float", 1.25)
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
	str, err = r.String(ctx, "c1", "some.string", "dflt")
	require.NoError(t, err)
	assert.Equal(t, "stored", str)
}

func TestResolver_UnparsableValueFallsBack(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	repo.store("c1", "some.int", "not-a-number", setting.TypeInt)
	repo.store("c1", "feature.x", "yes-ish", setting.TypeBool)

	i, err := r.Int(ctx, "c1", "some.int", 42)
	require.NoError(t, err)
	assert.Equal(t, 42, i)
	b, err := r.Bool(ctx, "c1", "feature.x", true)
	require.NoError(t, err)
	assert.True(t, b)
}

func TestResolver_RepoFailurePropagates(t *testing.T) {
	repo := newMemorySettingRepo()
	repo.getErr = errors.New("connection refused")
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	// a failed read must not be mistaken for an absent key
	_, err := r.Int(ctx, "c1", setting.KeyRoundingPrecision, 2)
	assert.ErrorContains(t, err, "connection refused")
	_, err = r.Float(ctx, "c1", setting.KeyOvertimeMultiplier, 1.5)
	assert.ErrorContains(t, err, "connection refused")
	_, err = r.String(ctx, "c1", setting.KeyThresholdPolicy, "per_interval")
	assert.ErrorContains(t, err, "connection refused")
	_, err = r.Bool(ctx, "c1", "feature.x", true)
	assert.ErrorContains(t, err, "connection refused")
}

func TestResolver_ValuesScopedPerCompany(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	repo.store("c1", setting.KeyRoundingPrecision, "4", setting.TypeInt)

	i, err := r.Int(ctx, "c1", setting.KeyRoundingPrecision, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, i)
	i, err = r.Int(ctx, "c2", setting.KeyRoundingPrecision, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestResolver_JSON(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	type payload struct {
		Enabled bool `json:"enabled"`
	}

	// absent key leaves out untouched
	out := payload{Enabled: true}
	require.NoError(t, r.JSON(ctx, "c1", "some.json", &out))
	assert.True(t, out.Enabled)

	repo.store("c1", "some.json", `{"enabled": false}`, setting.TypeJSON)
	require.NoError(t, r.JSON(ctx, "c1", "some.json", &out))
	assert.False(t, out.Enabled)

	repo.store("c1", "bad.json", `{not json`, setting.TypeJSON)
	err := r.JSON(ctx, "c1", "bad.json", &out)
	assert.ErrorIs(t, err, setting.ErrValueParse)
}

func TestResolver_SetRejectsTypeMismatch(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	_, err := r.Set(ctx, "c1", "some.int", setting.TypeInt, "abc")
	assert.ErrorIs(t, err, setting.ErrValueParse)

	_, err = r.Set(ctx, "c1", "some.key", setting.ValueType("blob"), "x")
	assert.ErrorIs(t, err, setting.ErrInvalidValueType)

	s, err := r.Set(ctx, "c1", "some.float", setting.TypeFloat, "2.50")
	require.NoError(t, err)
	assert.Equal(t, "2.5", s.Value)
}

func TestResolver_OverridesAndClear(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	overrides, err := r.Overrides(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, overrides)

	_, err = r.Set(ctx, "c1", setting.KeyRoundingPrecision, setting.TypeInt, "4")
	require.NoError(t, err)
	_, err = r.Set(ctx, "c2", setting.KeyRoundingPrecision, setting.TypeInt, "0")
	require.NoError(t, err)

	overrides, err = r.Overrides(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, overrides, 1)
	assert.Equal(t, setting.KeyRoundingPrecision, overrides[0].Key)
	assert.Equal(t, "4", overrides[0].Value)

	require.NoError(t, r.Clear(ctx, "c1", setting.KeyRoundingPrecision))

	// cleared key falls back to the default; the other company is untouched
	i, err := r.Int(ctx, "c1", setting.KeyRoundingPrecision, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, i)
	i, err = r.Int(ctx, "c2", setting.KeyRoundingPrecision, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	err = r.Clear(ctx, "c1", setting.KeyRoundingPrecision)
	assert.ErrorIs(t, err, setting.ErrSettingNotFound)
}

func TestResolver_SnapshotDefaults(t *testing.T) {
	r := NewResolver(newMemorySettingRepo(), testDefaults())

	snap, err := r.Snapshot(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, snap.OvertimeMultiplier.Equal(decimal.NewFromFloat(1.5)))
	assert.True(t, snap.DailyOvertimeThreshold.Equal(decimal.NewFromInt(8)))
	assert.True(t, snap.StandardWorkdayHours.Equal(decimal.NewFromInt(8)))
	assert.Equal(t, int32(2), snap.RoundingPrecision)
	assert.Equal(t, payroll.PeriodWeekly, snap.DefaultPeriodType)
	assert.Equal(t, payroll.PolicyPerInterval, snap.ThresholdPolicy)
}

func TestResolver_SnapshotStoredOverrides(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())

	repo.store("c1", setting.KeyOvertimeMultiplier, "2", setting.TypeFloat)
	repo.store("c1", setting.KeyThresholdPolicy, "per_day", setting.TypeString)

	snap, err := r.Snapshot(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, snap.OvertimeMultiplier.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, payroll.PolicyPerDay, snap.ThresholdPolicy)
	// untouched keys keep their defaults
	assert.True(t, snap.DailyOvertimeThreshold.Equal(decimal.NewFromInt(8)))
}

func TestResolver_SnapshotRepoFailurePropagates(t *testing.T) {
	repo := newMemorySettingRepo()
	repo.getErr = errors.New("connection refused")
	r := NewResolver(repo, testDefaults())

	// the snapshot must fail loudly, never silently hand back defaults
	_, err := r.Snapshot(context.Background(), "c1")
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func TestResolver_UpdateCalcSettingsRoundTrip(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	multiplier := decimal.NewFromInt(2)
	precision := int32(0)
	policy := string(payroll.PolicyPerDay)
	err := r.UpdateCalcSettings(ctx, "c1", payroll.UpdateCalcSettingsRequest{
		OvertimeMultiplier: &multiplier,
		RoundingPrecision:  &precision,
		ThresholdPolicy:    &policy,
	})
	require.NoError(t, err)

	snap, err := r.Snapshot(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, snap.OvertimeMultiplier.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, int32(0), snap.RoundingPrecision)
	assert.Equal(t, payroll.PolicyPerDay, snap.ThresholdPolicy)
}

func TestResolver_UpdateCalcSettingsValidation(t *testing.T) {
	repo := newMemorySettingRepo()
	r := NewResolver(repo, testDefaults())
	ctx := context.Background()

	badPrecision := int32(9)
	err := r.UpdateCalcSettings(ctx, "c1", payroll.UpdateCalcSettingsRequest{RoundingPrecision: &badPrecision})
	assert.Error(t, err)

	badPolicy := "per_shift"
	err = r.UpdateCalcSettings(ctx, "c1", payroll.UpdateCalcSettingsRequest{ThresholdPolicy: &badPolicy})
	assert.Error(t, err)

	// nothing persisted from rejected requests
	snap, err := r.Snapshot(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), snap.RoundingPrecision)
	assert.Equal(t, payroll.PolicyPerInterval, snap.ThresholdPolicy)
}

package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/sitecrew/workforce-backend-go/internal/config"
	"github.com/sitecrew/workforce-backend-go/internal/domain/payroll"
	"github.com/sitecrew/workforce-backend-go/internal/domain/setting"
)

// Resolver supplies typed configuration values with a three-step fallback
// chain: explicit stored value, then the environment-configured default,
// then the hardcoded default baked into config.Load. It replaces the
// process-wide settings singleton of earlier designs: callers take a
// Snapshot once per calculation batch and pass it around explicitly.
//
// Only an absent key or an unparsable stored value falls back. Repository
// failures propagate: a calculation must never silently run on defaults
// because the settings read failed.
type Resolver struct {
	repo     setting.SettingRepository
	defaults config.PayrollConfig
}

func NewResolver(repo setting.SettingRepository, defaults config.PayrollConfig) *Resolver {
	return &Resolver{repo: repo, defaults: defaults}
}

// Bool returns companyID's stored value for key, or fallback when the key is
// absent or unparsable.
func (r *Resolver) Bool(ctx context.Context, companyID, key string, fallback bool) (bool, error) {
	s, err := r.repo.Get(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	v, err := strconv.ParseBool(s.Value)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}

func (r *Resolver) Int(ctx context.Context, companyID, key string, fallback int) (int, error) {
	s, err := r.repo.Get(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	v, err := strconv.Atoi(s.Value)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}

func (r *Resolver) Float(ctx context.Context, companyID, key string, fallback float64) (float64, error) {
	s, err := r.repo.Get(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	v, err := strconv.ParseFloat(s.Value, 64)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}

func (r *Resolver) String(ctx context.Context, companyID, key string, fallback string) (string, error) {
	s, err := r.repo.Get(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return fallback, nil
		}
		return fallback, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return s.Value, nil
}

// JSON unmarshals the stored value into out; out is left untouched when the
// key is absent or the stored value is not valid JSON.
func (r *Resolver) JSON(ctx context.Context, companyID, key string, out interface{}) error {
	s, err := r.repo.Get(ctx, companyID, key)
	if err != nil {
		if errors.Is(err, setting.ErrSettingNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(s.Value), out); err != nil {
		return fmt.Errorf("%w: %s", setting.ErrValueParse, key)
	}
	return nil
}

// Set stores a value under its declared type, re-serializing to the stored
// text form. Values that do not match the declared type are rejected.
func (r *Resolver) Set(ctx context.Context, companyID, key string, valueType setting.ValueType, value string) (setting.Setting, error) {
	serialized, err := serialize(valueType, value)
	if err != nil {
		return setting.Setting{}, err
	}
	return r.repo.Upsert(ctx, setting.Setting{
		CompanyID: companyID,
		Key:       key,
		Value:     serialized,
		Type:      valueType,
	})
}

// Overrides lists the stored per-company rows, i.e. only the values that
// shadow the environment defaults.
func (r *Resolver) Overrides(ctx context.Context, companyID string) ([]setting.Setting, error) {
	return r.repo.List(ctx, companyID)
}

// Clear removes a stored override so the key falls back to the
// environment-configured default on the next read.
func (r *Resolver) Clear(ctx context.Context, companyID, key string) error {
	return r.repo.Delete(ctx, companyID, key)
}

func serialize(valueType setting.ValueType, value string) (string, error) {
	switch valueType {
	case setting.TypeBool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a bool", setting.ErrValueParse, value)
		}
		return strconv.FormatBool(v), nil
	case setting.TypeInt:
		v, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not an int", setting.ErrValueParse, value)
		}
		return strconv.Itoa(v), nil
	case setting.TypeFloat:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q is not a float", setting.ErrValueParse, value)
		}
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case setting.TypeJSON:
		if !json.Valid([]byte(value)) {
			return "", fmt.Errorf("%w: value is not valid JSON", setting.ErrValueParse)
		}
		return value, nil
	case setting.TypeString:
		return value, nil
	}
	return "", fmt.Errorf("%w: %q", setting.ErrInvalidValueType, string(valueType))
}

// Snapshot reads the calculation settings once for a company. Every entry in
// one payroll run is computed against the same snapshot even if stored
// settings change mid-run. A repository failure aborts the snapshot so the
// caller never calculates against defaults it did not ask for.
func (r *Resolver) Snapshot(ctx context.Context, companyID string) (payroll.CalcSettings, error) {
	multiplier, err := r.Float(ctx, companyID, setting.KeyOvertimeMultiplier, r.defaults.OvertimeMultiplier)
	if err != nil {
		return payroll.CalcSettings{}, err
	}
	threshold, err := r.Float(ctx, companyID, setting.KeyDailyOvertimeThreshold, r.defaults.DailyOvertimeThreshold)
	if err != nil {
		return payroll.CalcSettings{}, err
	}
	workday, err := r.Float(ctx, companyID, setting.KeyStandardWorkdayHours, r.defaults.StandardWorkdayHours)
	if err != nil {
		return payroll.CalcSettings{}, err
	}
	precision, err := r.Int(ctx, companyID, setting.KeyRoundingPrecision, r.defaults.RoundingPrecision)
	if err != nil {
		return payroll.CalcSettings{}, err
	}
	periodType, err := r.String(ctx, companyID, setting.KeyDefaultPeriodType, r.defaults.DefaultPeriodType)
	if err != nil {
		return payroll.CalcSettings{}, err
	}
	policy, err := r.String(ctx, companyID, setting.KeyThresholdPolicy, r.defaults.ThresholdPolicy)
	if err != nil {
		return payroll.CalcSettings{}, err
	}

	return payroll.CalcSettings{
		OvertimeMultiplier:     decimal.NewFromFloat(multiplier),
		DailyOvertimeThreshold: decimal.NewFromFloat(threshold),
		StandardWorkdayHours:   decimal.NewFromFloat(workday),
		RoundingPrecision:      int32(precision),
		DefaultPeriodType:      payroll.PeriodType(periodType),
		ThresholdPolicy:        payroll.ThresholdPolicy(policy),
	}, nil
}

// UpdateCalcSettings persists the provided calculator settings as stored
// company values.
func (r *Resolver) UpdateCalcSettings(ctx context.Context, companyID string, req payroll.UpdateCalcSettingsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.OvertimeMultiplier != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyOvertimeMultiplier, setting.TypeFloat, req.OvertimeMultiplier.String()); err != nil {
			return err
		}
	}
	if req.DailyOvertimeThreshold != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyDailyOvertimeThreshold, setting.TypeFloat, req.DailyOvertimeThreshold.String()); err != nil {
			return err
		}
	}
	if req.StandardWorkdayHours != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyStandardWorkdayHours, setting.TypeFloat, req.StandardWorkdayHours.String()); err != nil {
			return err
		}
	}
	if req.RoundingPrecision != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyRoundingPrecision, setting.TypeInt, strconv.Itoa(int(*req.RoundingPrecision))); err != nil {
			return err
		}
	}
	if req.DefaultPeriodType != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyDefaultPeriodType, setting.TypeString, *req.DefaultPeriodType); err != nil {
			return err
		}
	}
	if req.ThresholdPolicy != nil {
		if _, err := r.Set(ctx, companyID, setting.KeyThresholdPolicy, setting.TypeString, *req.ThresholdPolicy); err != nil {
			return err
		}
	}

	return nil
}

package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkedErrorsMatchSentinels(t *testing.T) {
	err := NewError("no rule for 2025-01-15").
		WithHint("No tax rule configured for this stay's date, contact your administrator").
		Mark(ErrNoApplicableRule)

	assert.True(t, Is(err, ErrNoApplicableRule))
	assert.False(t, Is(err, ErrAmbiguousRuleConfiguration))
	assert.True(t, IsCityTaxError(err))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatusFromErr(err))
	assert.Equal(t, "No tax rule configured for this stay's date, contact your administrator", DisplayMessage(err))
}

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NewError("booking missing").Mark(ErrNotFound), http.StatusNotFound},
		{"validation", NewError("bad rate").Mark(ErrValidation), http.StatusBadRequest},
		{"ambiguous rules", NewError("overlap").Mark(ErrAmbiguousRuleConfiguration), http.StatusConflict},
		{"date range", NewError("zero nights").Mark(ErrInvalidDateRange), http.StatusBadRequest},
		{"unknown role", NewError("chef").Mark(ErrUnknownGuestRole), http.StatusBadRequest},
		{"unmarked", NewError("boom").Error(), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestDisplayMessageFallsBackToErrorText(t *testing.T) {
	err := NewError("plain failure").Mark(ErrSystem)
	assert.Contains(t, DisplayMessage(err), "plain failure")
	assert.False(t, IsCityTaxError(err))
}

func TestCode(t *testing.T) {
	assert.Equal(t, ErrCodeUnknownGuestRole, Code(NewError("chef").Mark(ErrUnknownGuestRole)))
	assert.Equal(t, ErrCodeUnauthorized, Code(NewError("bad password").Mark(ErrUnauthorized)))
	assert.Equal(t, ErrCodeSystemError, Code(NewError("boom").Error()))
}

func TestDetails(t *testing.T) {
	err := NewError("overlap").
		WithReportableDetails(map[string]any{"rule_id": "r1"}).
		WithReportableDetails(map[string]any{"overlapping_rule_ids": []string{"r2"}}).
		Mark(ErrAmbiguousRuleConfiguration)

	details := Details(err)
	assert.Equal(t, "r1", details["rule_id"])
	assert.Equal(t, []any{"r2"}, details["overlapping_rule_ids"])

	wrapped := WithError(err).
		WithReportableDetails(map[string]any{"rule_id": "outer"}).
		Mark(ErrValidation)
	assert.Equal(t, "outer", Details(wrapped)["rule_id"])
	assert.True(t, Is(wrapped, ErrAmbiguousRuleConfiguration))

	assert.Nil(t, Details(NewError("plain").Mark(ErrSystem)))
}

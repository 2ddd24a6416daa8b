package service

import (
	"context"
	"encoding/json"

	ierr "smartbook/internal/errors"
	"smartbook/internal/logger"
	"smartbook/internal/model"
	"smartbook/internal/repository"

	"github.com/google/uuid"
)

// Live event types pushed to dashboards
const (
	EventTaxCalculated = "tax.calculated"
	EventTaxRuleChange = "tax_rule.changed"
)

// EventPublisher pushes live events to the dashboards of one tenant.
type EventPublisher interface {
	Publish(tenantID uuid.UUID, eventType string, payload any)
}

// RuleProvider serves the full tax rule set of a tenant.
type RuleProvider interface {
	RulesForTenant(ctx context.Context, tenantID uuid.UUID) ([]model.TaxRule, error)
}

func parseUUID(value, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ierr.WithError(err).
			WithHintf("Invalid %s id", entity).
			WithReportableDetails(map[string]any{"id": value}).
			Mark(ierr.ErrValidation)
	}
	return id, nil
}

// auditLogger writes best-effort audit entries; a failed write never fails
// the operation that triggered it.
type auditLogger struct {
	repo   repository.AuditRepository
	logger *logger.Logger
}

func (a auditLogger) write(ctx context.Context, tenantID uuid.UUID, userID, action, entityID, entityName string, details any) {
	detailsJSON, _ := json.Marshal(details)

	entry := model.AuditLog{
		TenantID:   tenantID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(detailsJSON),
	}

	if userID != "" {
		if parsed, err := uuid.Parse(userID); err == nil {
			entry.UserID = &parsed
		}
	}

	if err := a.repo.Log(ctx, &entry); err != nil {
		a.logger.Warnw("failed to write audit log",
			"action", action,
			"entity_id", entityID,
			"error", err)
	}
}

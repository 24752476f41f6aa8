package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/timegrid/internal/db"
	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/repository"
)

type projectImporter struct {
	uow db.UnitOfWork
}

// NewProjectImporter returns an importer that writes each batch in a single
// transaction.
func NewProjectImporter(uow db.UnitOfWork) ProjectImporter {
	return &projectImporter{uow: uow}
}

// Import creates the projects of plans, or updates their allotments when
// the code already exists. Either every plan is stored or none is.
func (s *projectImporter) Import(ctx context.Context, plans []domain.ProjectPlan) (int, error) {
	if errs := validatePlans(plans); len(errs) > 0 {
		return 0, formatValidationErrors(errs)
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		allotments := repository.NewSQLiteAllotmentRepo(tx)

		for _, plan := range plans {
			code, _ := domain.NormalizeCode(plan.Code)
			p := &domain.Project{Code: code, Allotted: plan.Allotted}
			if err := projects.CreateIfMissing(ctx, p); err != nil {
				return fmt.Errorf("creating project %q: %w", code, err)
			}
			for month, hours := range plan.Allotments {
				a := domain.MonthlyAllotment{ProjectID: p.ID, Month: month, Allotted: hours}
				if err := allotments.Upsert(ctx, a); err != nil {
					return fmt.Errorf("setting %s allotment for %q: %w", month, code, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(plans), nil
}

func validatePlans(plans []domain.ProjectPlan) []error {
	var errs []error
	seen := make(map[string]bool, len(plans))
	for i, plan := range plans {
		code, err := domain.NormalizeCode(plan.Code)
		if err != nil {
			errs = append(errs, fmt.Errorf("projects[%d]: %w", i, err))
			continue
		}
		if seen[code] {
			errs = append(errs, fmt.Errorf("projects[%d]: duplicate code %q", i, code))
		}
		seen[code] = true
		if err := domain.ValidateHours(plan.Allotted); err != nil {
			errs = append(errs, fmt.Errorf("projects[%d].allotted: %w", i, err))
		}
		for month, hours := range plan.Allotments {
			if _, err := domain.ParseMonth(month); err != nil {
				errs = append(errs, fmt.Errorf("projects[%d].allotments[%s]: %w", i, month, err))
			}
			if err := domain.ValidateHours(hours); err != nil {
				errs = append(errs, fmt.Errorf("projects[%d].allotments[%s]: %w", i, month, err))
			}
		}
	}
	return errs
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

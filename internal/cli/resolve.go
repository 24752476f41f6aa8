package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/timegrid/internal/domain"
	"github.com/alexanderramin/timegrid/internal/repository"
)

// resolveProject finds a project by code (case-insensitive) or numeric id.
// A code match wins over an id match.
func resolveProject(ctx context.Context, app *App, input string) (domain.Project, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Project{}, fmt.Errorf("project is required")
	}

	projects, err := app.Gateway.ListProjects(ctx)
	if err != nil {
		return domain.Project{}, fmt.Errorf("listing projects: %w", err)
	}

	for _, p := range projects {
		if strings.EqualFold(p.Code, input) {
			return p, nil
		}
	}

	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		for _, p := range projects {
			if p.ID == id {
				return p, nil
			}
		}
	}

	return domain.Project{}, fmt.Errorf("project %q: %w", input, repository.ErrNotFound)
}

// parseProjectID parses a numeric project id argument.
func parseProjectID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", s)
	}
	return id, nil
}

// parseHoursArg parses an hours argument strictly; the lenient cell rule
// (garbage is zero) only applies to grid input.
func parseHoursArg(s string) (float64, error) {
	h, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q", s)
	}
	if err := domain.ValidateHours(h); err != nil {
		return 0, err
	}
	return h, nil
}

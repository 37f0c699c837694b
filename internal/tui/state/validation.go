package state

import (
	"fmt"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/validation"
)

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	snapshot, err := m.Service.Snapshot()
	if err != nil {
		// Store errors prevent validation - show generic message
		m.ValidationWarning = "⚠ Validation unavailable"
		m.ValidationConflicts = nil
		return
	}

	validator := validation.New(models.NewCategoryRegistry(snapshot.Categories))
	result := validator.ValidateSnapshot(snapshot)
	m.ValidationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'routinely validate'", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}

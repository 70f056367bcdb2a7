package domain

// DTOs (Data Transfer Objects) - Domain layer request structures

type (
	// TodoPatch struct - Fields replaced by a find-and-update call.
	// Nil fields are left untouched.
	TodoPatch struct {
		Text *string
	}
)

// IsEmpty reports whether the patch carries no field to change
func (p TodoPatch) IsEmpty() bool {
	return p.Text == nil
}

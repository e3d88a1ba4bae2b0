// File: internal/domain/department.go
package domain

import "time"

// Department is an admin-managed routing target. Its description doubles as
// the prompt the backend's router reads when picking a team for a case.
type Department struct {
    ID                 string    `json:"id"`
    Name               string    `json:"name"`
    Description        string    `json:"description"`
    IsActive           bool      `json:"isActive"`
    CanReceiveHandoffs bool      `json:"canReceiveHandoffs"`
    CreatedAt          time.Time `json:"createdAt"`
    UpdatedAt          time.Time `json:"updatedAt"`
}

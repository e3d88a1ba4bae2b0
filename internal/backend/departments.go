// File: internal/backend/departments.go
package backend

import (
    "context"

    "github.com/salucare/triage-console/internal/domain"
)

type departmentList struct {
    Departments []domain.Department `json:"departments"`
    Total       int                 `json:"total"`
}

type departmentEnvelope struct {
    Department domain.Department `json:"department"`
}

// ListDepartments returns every routing department, active or not.
func (c *Client) ListDepartments(ctx context.Context) ([]domain.Department, error) {
    var data departmentList
    if err := c.get(ctx, "list_departments", "/admin/departments", nil, &data); err != nil {
        return nil, err
    }
    return data.Departments, nil
}

type departmentRequest struct {
    Name        string `json:"name"`
    Description string `json:"description"`
}

// CreateDepartment registers a new routing department.
func (c *Client) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
    var data departmentEnvelope
    err := c.post(ctx, "create_department", "/admin/departments",
        departmentRequest{Name: name, Description: description}, &data)
    if err != nil {
        return nil, err
    }
    return &data.Department, nil
}

// UpdateDepartment replaces a department's name and routing description.
func (c *Client) UpdateDepartment(ctx context.Context, id, name, description string) (*domain.Department, error) {
    var data departmentEnvelope
    err := c.put(ctx, "update_department", "/admin/departments/"+id,
        departmentRequest{Name: name, Description: description}, &data)
    if err != nil {
        return nil, err
    }
    return &data.Department, nil
}

// ToggleDepartment flips a department's active flag.
func (c *Client) ToggleDepartment(ctx context.Context, id string) (*domain.Department, error) {
    var data departmentEnvelope
    if err := c.patch(ctx, "toggle_department", "/admin/departments/"+id+"/toggle", nil, &data); err != nil {
        return nil, err
    }
    return &data.Department, nil
}

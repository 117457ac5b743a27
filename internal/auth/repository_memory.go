package auth

import "errors"

type InMemoryEmployeeRepository struct {
	employees map[string]*Employee
	nextID    int
}

func NewInMemoryEmployeeRepository() *InMemoryEmployeeRepository {
	return &InMemoryEmployeeRepository{
		employees: make(map[string]*Employee),
		nextID:    1,
	}
}

func (r *InMemoryEmployeeRepository) Save(employee *Employee) error {
	if employee.ID == 0 {
		employee.ID = r.nextID
		r.nextID++
	}
	r.employees[employee.Email] = employee
	return nil
}

func (r *InMemoryEmployeeRepository) ExistsByEmail(email string) (bool, error) {
	_, exists := r.employees[email]
	return exists, nil
}

func (r *InMemoryEmployeeRepository) FindByEmail(email string) (*Employee, error) {
	employee, ok := r.employees[email]
	if !ok {
		return nil, errors.New("employee not found")
	}
	return employee, nil
}

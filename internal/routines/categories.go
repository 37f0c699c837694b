package routines

import (
	"github.com/julianstephens/routinely/internal/models"
)

// Categories returns the default labels followed by the custom ones.
func (s *Service) Categories() ([]string, error) {
	reg, err := s.Registry()
	if err != nil {
		return nil, err
	}
	return reg.All(), nil
}

func (s *Service) Registry() (*models.CategoryRegistry, error) {
	custom, err := s.store.LoadCategories()
	if err != nil {
		return nil, err
	}
	return models.NewCategoryRegistry(custom), nil
}

func (s *Service) AddCategory(name string) error {
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	if err := reg.Add(name); err != nil {
		return err
	}
	return s.store.SaveCategories(reg.Custom())
}

// RemoveCategory drops a custom label. Items that use it keep it.
func (s *Service) RemoveCategory(name string) error {
	reg, err := s.Registry()
	if err != nil {
		return err
	}
	if err := reg.Remove(name); err != nil {
		return err
	}
	return s.store.SaveCategories(reg.Custom())
}

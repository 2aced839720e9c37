package services

import (
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

type ItemService interface {
	CreateItem(item *models.Item) error
	GetItemByID(id int) (*models.Item, error)
	ListItems() ([]*models.Item, error)
	ListItemsByUser(userID int) ([]*models.Item, error)
	UpdateItem(item *models.Item) error
	DeleteItem(id int) error
}

type itemService struct {
	repo repositories.ItemRepository
}

func NewItemService(repo repositories.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) CreateItem(item *models.Item) error {
	return s.repo.Create(item)
}

func (s *itemService) GetItemByID(id int) (*models.Item, error) {
	return s.repo.GetByID(id)
}

func (s *itemService) ListItems() ([]*models.Item, error) {
	return s.repo.List()
}

func (s *itemService) ListItemsByUser(userID int) ([]*models.Item, error) {
	return s.repo.ListByUser(userID)
}

func (s *itemService) UpdateItem(item *models.Item) error {
	return s.repo.Update(item)
}

func (s *itemService) DeleteItem(id int) error {
	return s.repo.Delete(id)
}

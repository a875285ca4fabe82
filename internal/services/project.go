package services

import (
	"errors"
	"strings"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// ProjectItem is a catalog entry: the project plus its request count.
type ProjectItem struct {
	models.Project
	CollaborationCount int64 `json:"collaboration_count"`
}

type ProjectListResponse struct {
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Items    []ProjectItem `json:"items"`
}

type ProjectAuthorInput struct {
	Name       string `json:"name" binding:"required"`
	University string `json:"university"`
	Email      string `json:"email"`
}

type CreateProjectRequest struct {
	Name          string               `json:"name" binding:"required"`
	Description   string               `json:"description" binding:"required"`
	Category      string               `json:"category" binding:"required,oneof=web mobile ai iot blockchain other"`
	Tags          []string             `json:"tags"`
	EstimatedCost float64              `json:"estimated_cost"`
	ImageURL      string               `json:"image_url"`
	ContactEmail  string               `json:"contact_email"`
	ContactPhone  string               `json:"contact_phone"`
	RepositoryURL string               `json:"repository_url"`
	DemoURL       string               `json:"demo_url"`
	Authors       []ProjectAuthorInput `json:"authors"`
}

type UpdateProjectRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category" binding:"omitempty,oneof=web mobile ai iot blockchain other"`
	Tags          []string `json:"tags"`
	EstimatedCost *float64 `json:"estimated_cost"`
	ImageURL      string   `json:"image_url"`
	ContactEmail  string   `json:"contact_email"`
	ContactPhone  string   `json:"contact_phone"`
	RepositoryURL string   `json:"repository_url"`
	DemoURL       string   `json:"demo_url"`
}

// List returns active projects ordered newest-first, optionally
// filtered by exact category and a case-insensitive substring match on
// name or description.
func (s *ProjectService) List(req *ProjectListRequest) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	query := s.db.Model(&models.Project{}).Where("status = ?", models.ProjectActive)

	if req.Category != "" && req.Category != "all" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		like := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var projects []models.Project
	offset := (req.Page - 1) * req.PageSize
	if err := query.
		Preload("Authors").
		Preload("Owner").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}

	items, err := s.attachCounts(projects)
	if err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    items,
	}, nil
}

// attachCounts resolves collaboration counts for a page of projects in
// a single grouped query.
func (s *ProjectService) attachCounts(projects []models.Project) ([]ProjectItem, error) {
	items := make([]ProjectItem, 0, len(projects))
	if len(projects) == 0 {
		return items, nil
	}

	ids := make([]uint, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	type row struct {
		ProjectID uint
		Count     int64
	}
	var rows []row
	if err := s.db.Model(&models.Collaboration{}).
		Select("project_id, COUNT(*) AS count").
		Where("project_id IN ?", ids).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.ProjectID] = r.Count
	}

	for _, p := range projects {
		items = append(items, ProjectItem{Project: p, CollaborationCount: counts[p.ID]})
	}
	return items, nil
}

// GetByID returns an active project with authors and owner.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := s.db.
		Preload("Authors").
		Preload("Owner").
		Where("status = ?", models.ProjectActive).
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

// ListByOwner returns all of a user's projects, deleted ones included,
// so owners can see the full history on their dashboard.
func (s *ProjectService) ListByOwner(userID uint) ([]ProjectItem, error) {
	var projects []models.Project
	if err := s.db.
		Preload("Authors").
		Where("created_by = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return s.attachCounts(projects)
}

// Create inserts the project row and its author rows as one
// transaction; a failing author insert rolls back the project.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	project := models.Project{
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Tags:          strings.Join(req.Tags, ","),
		EstimatedCost: req.EstimatedCost,
		ImageURL:      req.ImageURL,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		RepositoryURL: req.RepositoryURL,
		DemoURL:       req.DemoURL,
		Status:        models.ProjectActive,
		CreatedBy:     userID,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for _, a := range req.Authors {
			author := models.ProjectAuthor{
				ProjectID:  project.ID,
				Name:       a.Name,
				University: a.University,
				Email:      a.Email,
				Role:       "author",
			}
			if err := tx.Create(&author).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.db.Preload("Authors").First(&project, project.ID)
	return &project, nil
}

// Update applies a partial edit. Only the owner may update.
func (s *ProjectService) Update(id, userID uint, req *UpdateProjectRequest) (*models.Project, error) {
	project, err := s.ownedProject(id, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Tags != nil {
		updates["tags"] = strings.Join(req.Tags, ",")
	}
	if req.EstimatedCost != nil {
		updates["estimated_cost"] = *req.EstimatedCost
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.ContactEmail != "" {
		updates["contact_email"] = req.ContactEmail
	}
	if req.ContactPhone != "" {
		updates["contact_phone"] = req.ContactPhone
	}
	if req.RepositoryURL != "" {
		updates["repository_url"] = req.RepositoryURL
	}
	if req.DemoURL != "" {
		updates["demo_url"] = req.DemoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.db.Preload("Authors").First(project, project.ID)
	return project, nil
}

// Delete flips the project status to deleted. The row is kept so
// existing collaborations and conversations stay valid.
func (s *ProjectService) Delete(id, userID uint) error {
	project, err := s.ownedProject(id, userID)
	if err != nil {
		return err
	}
	if project.Status == models.ProjectDeleted {
		return nil
	}
	return s.db.Model(project).Update("status", models.ProjectDeleted).Error
}

func (s *ProjectService) ownedProject(id, userID uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	if project.CreatedBy != userID {
		return nil, response.NewForbidden("only the project owner may do this")
	}
	return &project, nil
}

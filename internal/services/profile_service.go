// internal/services/profile_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teeloom/teeloom-backend/internal/config"
	"github.com/teeloom/teeloom-backend/internal/models"
	"github.com/teeloom/teeloom-backend/internal/utils"
)

// ProfileService covers the account page for every role plus the
// designer-only contact and portfolio editors.
type ProfileService struct {
	db      *gorm.DB
	cfg     *config.Config
	storage *StorageService
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required,person_name"`
	LastName  string `json:"last_name" validate:"required,person_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,strong_password"`
}

type UpdateContactRequest struct {
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
}

type SavePortfolioRequest struct {
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description" validate:"required"`
	Specialization string   `json:"specialization" validate:"required,max=255"`
	Skills         []string `json:"skills" validate:"required,min=1,dive,required,max=100"`
}

type AddSkillRequest struct {
	Skill string `json:"skill" validate:"required,max=100"`
}

type AddSocialLinkRequest struct {
	Platform string `json:"platform" validate:"required,max=100"`
	URL      string `json:"url" validate:"required,url,max=512"`
}

// ProfileStatus drives the onboarding prompts on the designer dashboard.
type ProfileStatus struct {
	ContactInfoEmpty  bool `json:"contact_info_empty"`
	PortfolioEmpty    bool `json:"portfolio_empty"`
	PortfolioComplete bool `json:"portfolio_complete"`
	EmailVerified     bool `json:"email_verified"`
	SocialLinkCount   int  `json:"social_link_count"`
	SkillCount        int  `json:"skill_count"`
}

var (
	ErrDesignerOnly   = errors.New("designer profile required")
	ErrSkillDuplicate = errors.New("skill already exists")
	ErrSkillNotFound  = errors.New("skill not found")
	ErrSkillsRequired = errors.New("portfolio needs at least one skill")
	ErrLinkInvalid    = errors.New("platform and url are both required")
	ErrLinkNotFound   = errors.New("social link not found")
)

func NewProfileService(db *gorm.DB, cfg *config.Config, storage *StorageService) *ProfileService {
	return &ProfileService{
		db:      db,
		cfg:     cfg,
		storage: storage,
	}
}

func (s *ProfileService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Designer.Portfolio.SocialLinks").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *ProfileService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)

	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &user, nil
}

func (s *ProfileService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return errors.New("current password is incorrect")
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Save(&user).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *ProfileService) UploadAvatar(userID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}

	if err := s.storage.ValidateImage(file); err != nil {
		return nil, err
	}

	result, err := s.storage.UploadFile(file, header, s.storage.GetDefaultUploadOptions("avatars"))
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	user.AvatarURL = result.URL
	if err := s.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to save avatar: %w", err)
	}

	return &user, nil
}

// UpdateContact saves the designer's contact number and address. Fields left
// nil are not touched, so the two inputs can be saved independently.
func (s *ProfileService) UpdateContact(userID uuid.UUID, req *UpdateContactRequest) (*models.Designer, error) {
	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	if req.ContactNumber != nil {
		trimmed := strings.TrimSpace(*req.ContactNumber)
		designer.ContactNumber = &trimmed
	}
	if req.Address != nil {
		trimmed := strings.TrimSpace(*req.Address)
		designer.Address = &trimmed
	}

	if err := s.db.Save(designer).Error; err != nil {
		return nil, fmt.Errorf("failed to save contact info: %w", err)
	}

	return designer, nil
}

// SavePortfolio creates or updates the portfolio's text fields and skill
// set. A save without at least one usable skill is rejected and nothing is
// persisted, so the client keeps its edit session. Social links are managed
// through their own operations.
func (s *ProfileService) SavePortfolio(userID uuid.UUID, req *SavePortfolioRequest) (*models.Portfolio, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Normalized the way AddSkill does: trimmed, blanks and duplicates
	// dropped, insertion order kept
	var normalized models.Portfolio
	for _, skill := range req.Skills {
		normalized.AddSkill(skill)
	}
	if len(normalized.Skills) == 0 {
		return nil, ErrSkillsRequired
	}

	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.getOrCreatePortfolio(designer)
	if err != nil {
		return nil, err
	}

	portfolio.Title = strings.TrimSpace(req.Title)
	portfolio.Description = strings.TrimSpace(req.Description)
	portfolio.Specialization = strings.TrimSpace(req.Specialization)
	portfolio.Skills = normalized.Skills

	if err := s.db.Save(portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	return portfolio, nil
}

func (s *ProfileService) AddSkill(userID uuid.UUID, req *AddSkillRequest) (*models.Portfolio, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.getOrCreatePortfolio(designer)
	if err != nil {
		return nil, err
	}

	if !portfolio.AddSkill(req.Skill) {
		return nil, ErrSkillDuplicate
	}

	if err := s.db.Save(portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to save skill: %w", err)
	}

	return portfolio, nil
}

func (s *ProfileService) RemoveSkill(userID uuid.UUID, skill string) (*models.Portfolio, error) {
	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.getOrCreatePortfolio(designer)
	if err != nil {
		return nil, err
	}

	if !portfolio.RemoveSkill(skill) {
		return nil, ErrSkillNotFound
	}

	if err := s.db.Save(portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to remove skill: %w", err)
	}

	return portfolio, nil
}

func (s *ProfileService) AddSocialLink(userID uuid.UUID, req *AddSocialLinkRequest) (*models.Portfolio, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.getOrCreatePortfolio(designer)
	if err != nil {
		return nil, err
	}

	if !portfolio.AddSocialLink(req.Platform, req.URL) {
		return nil, ErrLinkInvalid
	}

	link := &portfolio.SocialLinks[len(portfolio.SocialLinks)-1]
	link.PortfolioID = portfolio.ID
	if err := s.db.Create(link).Error; err != nil {
		return nil, fmt.Errorf("failed to save social link: %w", err)
	}

	return portfolio, nil
}

func (s *ProfileService) RemoveSocialLink(userID uuid.UUID, linkID uuid.UUID) (*models.Portfolio, error) {
	designer, err := s.getDesigner(userID)
	if err != nil {
		return nil, err
	}

	portfolio, err := s.getOrCreatePortfolio(designer)
	if err != nil {
		return nil, err
	}

	if !portfolio.RemoveSocialLink(linkID) {
		return nil, ErrLinkNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND portfolio_id = ?", linkID, portfolio.ID).Delete(&models.SocialLink{}).Error; err != nil {
			return err
		}
		// Positions stay dense after removal
		for i := range portfolio.SocialLinks {
			if err := tx.Model(&models.SocialLink{}).
				Where("id = ?", portfolio.SocialLinks[i].ID).
				Update("position", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove social link: %w", err)
	}

	return portfolio, nil
}

// GetProfileStatus computes the emptiness flags the dashboard uses to nudge
// designers into completing their profile.
func (s *ProfileService) GetProfileStatus(userID uuid.UUID) (*ProfileStatus, error) {
	var user models.User
	if err := s.db.Preload("Designer.Portfolio.SocialLinks").First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if user.Designer == nil {
		return nil, ErrDesignerOnly
	}

	portfolio := user.Designer.Portfolio
	status := &ProfileStatus{
		ContactInfoEmpty:  user.Designer.IsContactInfoEmpty(),
		PortfolioEmpty:    portfolio.IsEmpty(),
		PortfolioComplete: portfolio != nil && portfolio.IsComplete(),
		EmailVerified:     user.EmailVerifiedAt != nil,
	}
	if portfolio != nil {
		status.SocialLinkCount = len(portfolio.SocialLinks)
		status.SkillCount = len(portfolio.Skills)
	}
	return status, nil
}

// GetPublicPortfolio returns a designer's portfolio for client-side viewing.
func (s *ProfileService) GetPublicPortfolio(designerID uuid.UUID) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.db.Preload("SocialLinks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("designer_id = ?", designerID).First(&portfolio).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("portfolio not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &portfolio, nil
}

func (s *ProfileService) getDesigner(userID uuid.UUID) (*models.Designer, error) {
	var designer models.Designer
	if err := s.db.Where("user_id = ?", userID).First(&designer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDesignerOnly
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &designer, nil
}

func (s *ProfileService) getOrCreatePortfolio(designer *models.Designer) (*models.Portfolio, error) {
	var portfolio models.Portfolio
	err := s.db.Preload("SocialLinks", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("designer_id = ?", designer.ID).First(&portfolio).Error
	if err == nil {
		return &portfolio, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	portfolio = models.Portfolio{DesignerID: designer.ID}
	if err := s.db.Create(&portfolio).Error; err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}
	return &portfolio, nil
}

// internal/models/portfolio.go
package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Portfolio is a designer's public-facing profile content. One per designer.
type Portfolio struct {
	BaseModel
	DesignerID     uuid.UUID      `json:"designer_id" gorm:"type:uuid;uniqueIndex;not null"`
	Title          string         `json:"title" gorm:"size:255"`
	Description    string         `json:"description" gorm:"type:text"`
	Specialization string         `json:"specialization" gorm:"size:255"`
	Skills         pq.StringArray `json:"skills" gorm:"type:text[]"`

	// Relationships
	Designer    Designer     `json:"-" gorm:"foreignKey:DesignerID"`
	SocialLinks []SocialLink `json:"social_links,omitempty" gorm:"foreignKey:PortfolioID;constraint:OnDelete:CASCADE"`
}

// SocialLink is an ordered (platform, url) pair. Links carry their own ids so
// removal is keyed by identity rather than list position.
type SocialLink struct {
	BaseModel
	PortfolioID uuid.UUID `json:"portfolio_id" gorm:"type:uuid;not null;index"`
	Platform    string    `json:"platform" gorm:"size:100;not null"`
	URL         string    `json:"url" gorm:"size:512;not null"`
	Position    int       `json:"position" gorm:"not null;default:0"`
}

// AddSkill appends a trimmed skill, rejecting blanks and exact-match
// (case-sensitive) duplicates. Returns true when the skill was added.
// Insertion order is preserved.
func (p *Portfolio) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return false
	}
	for _, existing := range p.Skills {
		if existing == skill {
			return false
		}
	}
	p.Skills = append(p.Skills, skill)
	return true
}

// RemoveSkill deletes a skill by exact string match. Returns true when a
// skill was removed.
func (p *Portfolio) RemoveSkill(skill string) bool {
	for i, existing := range p.Skills {
		if existing == skill {
			p.Skills = append(p.Skills[:i], p.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// AddSocialLink appends a (platform, url) pair. Both fields must be
// non-empty after trimming, otherwise the call is a no-op.
func (p *Portfolio) AddSocialLink(platform, url string) bool {
	platform = strings.TrimSpace(platform)
	url = strings.TrimSpace(url)
	if platform == "" || url == "" {
		return false
	}
	p.SocialLinks = append(p.SocialLinks, SocialLink{
		PortfolioID: p.ID,
		Platform:    platform,
		URL:         url,
		Position:    len(p.SocialLinks),
	})
	return true
}

// RemoveSocialLink deletes the link with the given id. Returns true when a
// link was removed. Positions of later links shift down to stay dense.
func (p *Portfolio) RemoveSocialLink(linkID uuid.UUID) bool {
	for i, link := range p.SocialLinks {
		if link.ID == linkID {
			p.SocialLinks = append(p.SocialLinks[:i], p.SocialLinks[i+1:]...)
			for j := i; j < len(p.SocialLinks); j++ {
				p.SocialLinks[j].Position = j
			}
			return true
		}
	}
	return false
}

// IsComplete reports whether the portfolio can be published: title,
// description and specialization are set and at least one skill exists.
func (p *Portfolio) IsComplete() bool {
	return strings.TrimSpace(p.Title) != "" &&
		strings.TrimSpace(p.Description) != "" &&
		strings.TrimSpace(p.Specialization) != "" &&
		len(p.Skills) > 0
}

// IsEmpty reports whether nothing has been filled in yet. A nil portfolio is
// empty.
func (p *Portfolio) IsEmpty() bool {
	if p == nil {
		return true
	}
	return strings.TrimSpace(p.Title) == "" &&
		strings.TrimSpace(p.Description) == "" &&
		strings.TrimSpace(p.Specialization) == "" &&
		len(p.Skills) == 0 &&
		len(p.SocialLinks) == 0
}

// contactFieldEmpty treats the literal "na" (any case, surrounding
// whitespace ignored) as "not yet provided". Existing stored data uses this
// sentinel, so it must be preserved exactly.
func contactFieldEmpty(field *string) bool {
	if field == nil {
		return true
	}
	v := strings.TrimSpace(*field)
	return v == "" || strings.EqualFold(v, "na")
}

// IsContactInfoEmpty reports whether the designer has not provided contact
// details yet: either field absent, or equal to the "na" sentinel.
func (d *Designer) IsContactInfoEmpty() bool {
	if d == nil {
		return true
	}
	return contactFieldEmpty(d.ContactNumber) || contactFieldEmpty(d.Address)
}

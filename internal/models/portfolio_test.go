// internal/models/portfolio_test.go
package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestPortfolioAddSkill(t *testing.T) {
	p := &Portfolio{}

	assert.True(t, p.AddSkill("screen printing"))
	assert.True(t, p.AddSkill("  embroidery  "))
	assert.Equal(t, pq.StringArray{"screen printing", "embroidery"}, p.Skills)

	// Blanks and duplicates are rejected
	assert.False(t, p.AddSkill(""))
	assert.False(t, p.AddSkill("   "))
	assert.False(t, p.AddSkill("embroidery"))
	assert.Len(t, p.Skills, 2)

	// Matching is case-sensitive, so a different casing is a new skill
	assert.True(t, p.AddSkill("Embroidery"))
	assert.Len(t, p.Skills, 3)
}

func TestPortfolioRemoveSkill(t *testing.T) {
	p := &Portfolio{Skills: pq.StringArray{"a", "b", "c"}}

	assert.True(t, p.RemoveSkill("b"))
	assert.Equal(t, pq.StringArray{"a", "c"}, p.Skills)

	assert.False(t, p.RemoveSkill("b"))
	assert.False(t, p.RemoveSkill("missing"))
	assert.Equal(t, pq.StringArray{"a", "c"}, p.Skills)
}

func TestPortfolioAddSocialLink(t *testing.T) {
	p := &Portfolio{}

	assert.True(t, p.AddSocialLink("instagram", "https://instagram.com/x"))
	assert.True(t, p.AddSocialLink("  behance  ", "  https://behance.net/x  "))

	assert.False(t, p.AddSocialLink("", "https://example.com"))
	assert.False(t, p.AddSocialLink("dribbble", ""))
	assert.False(t, p.AddSocialLink("  ", "  "))

	assert.Len(t, p.SocialLinks, 2)
	assert.Equal(t, "behance", p.SocialLinks[1].Platform)
	assert.Equal(t, "https://behance.net/x", p.SocialLinks[1].URL)
	assert.Equal(t, 0, p.SocialLinks[0].Position)
	assert.Equal(t, 1, p.SocialLinks[1].Position)
}

func TestPortfolioRemoveSocialLink(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	third := uuid.New()

	p := &Portfolio{
		SocialLinks: []SocialLink{
			{BaseModel: BaseModel{ID: first}, Platform: "instagram", Position: 0},
			{BaseModel: BaseModel{ID: second}, Platform: "behance", Position: 1},
			{BaseModel: BaseModel{ID: third}, Platform: "dribbble", Position: 2},
		},
	}

	assert.True(t, p.RemoveSocialLink(second))
	assert.Len(t, p.SocialLinks, 2)

	// Positions of later links shift down to stay dense
	assert.Equal(t, "instagram", p.SocialLinks[0].Platform)
	assert.Equal(t, 0, p.SocialLinks[0].Position)
	assert.Equal(t, "dribbble", p.SocialLinks[1].Platform)
	assert.Equal(t, 1, p.SocialLinks[1].Position)

	assert.False(t, p.RemoveSocialLink(second))
	assert.False(t, p.RemoveSocialLink(uuid.New()))
}

func TestPortfolioIsComplete(t *testing.T) {
	p := &Portfolio{}
	assert.False(t, p.IsComplete())

	p.Title = "Streetwear prints"
	p.Description = "Bold prints for small brands"
	p.Specialization = "screen printing"
	assert.False(t, p.IsComplete(), "a skill is still required")

	p.Skills = pq.StringArray{"screen printing"}
	assert.True(t, p.IsComplete())

	p.Description = "   "
	assert.False(t, p.IsComplete())
}

func TestPortfolioIsEmpty(t *testing.T) {
	var nilPortfolio *Portfolio
	assert.True(t, nilPortfolio.IsEmpty())

	p := &Portfolio{}
	assert.True(t, p.IsEmpty())

	p.Title = "  "
	assert.True(t, p.IsEmpty())

	p.Skills = pq.StringArray{"embroidery"}
	assert.False(t, p.IsEmpty())
}

func TestDesignerIsContactInfoEmpty(t *testing.T) {
	str := func(s string) *string { return &s }

	var nilDesigner *Designer
	assert.True(t, nilDesigner.IsContactInfoEmpty())

	cases := []struct {
		name    string
		contact *string
		address *string
		want    bool
	}{
		{"both nil", nil, nil, true},
		{"contact only", str("+886 912 345 678"), nil, true},
		{"address only", nil, str("Taipei"), true},
		{"both set", str("+886 912 345 678"), str("Taipei"), false},
		{"na sentinel lowercase", str("na"), str("Taipei"), true},
		{"na sentinel uppercase", str("Taipei St. 1"), str("NA"), true},
		{"na sentinel mixed case", str("Na"), str("Taipei"), true},
		{"na sentinel padded", str(" na "), str("Taipei"), true},
		{"empty strings", str(""), str("   "), true},
		{"na as substring is real data", str("nashville line"), str("Banana Rd."), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := &Designer{ContactNumber: tc.contact, Address: tc.address}
			assert.Equal(t, tc.want, d.IsContactInfoEmpty())
		})
	}
}

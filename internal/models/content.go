package models

import "strings"

// Site holds the data behind the portfolio's static pages
type Site struct {
	Owner          string         `json:"owner" yaml:"owner"`
	Navigation     []NavLink      `json:"navigation" yaml:"navigation"`
	Skills         []Skill        `json:"skills" yaml:"skills"`
	SocialLinks    []SocialLink   `json:"socialLinks" yaml:"social_links"`
	LinkCategories []LinkCategory `json:"linkCategories" yaml:"link_categories"`
	Photos         []*Photo       `json:"photos" yaml:"photos"`
}

// NavLink is an entry of the top navigation bar
type NavLink struct {
	Label string `json:"label" yaml:"label"`
	Path  string `json:"path" yaml:"path"`
}

// Skill is shown on the home page, grouped by category
type Skill struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
	Badge    string `json:"badge,omitempty" yaml:"badge"`
}

// SocialLink points at an external profile
type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Icon string `json:"icon,omitempty" yaml:"icon"`
}

// LinkCategory groups related links on the links page
type LinkCategory struct {
	Name  string     `json:"name" yaml:"name"`
	Icon  string     `json:"icon,omitempty" yaml:"icon"`
	Links []LinkItem `json:"links" yaml:"links"`
}

type LinkItem struct {
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
}

// Photo is one gallery entry. Slug is derived from Title and ID when the site is loaded.
type Photo struct {
	ID    int    `json:"id" yaml:"id"`
	Slug  string `json:"slug" yaml:"-"`
	Src   string `json:"src" yaml:"src"`
	Alt   string `json:"alt" yaml:"alt"`
	Title string `json:"title" yaml:"title"`
	Game  string `json:"game,omitempty" yaml:"game"`
}

// PhotoFilter narrows the gallery listing
type PhotoFilter struct {
	Game string
}

// Matches reports whether p passes the filter. Game comparison ignores case.
func (f PhotoFilter) Matches(p *Photo) bool {
	if f.Game == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(f.Game), p.Game)
}

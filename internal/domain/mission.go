package domain

import "time"

type Mission struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LaunchDate   time.Time `json:"launch_date"`
	LaunchSite   string    `json:"launch_site"`
	LandingDate  time.Time `json:"landing_date"`
	LandingSite  string    `json:"landing_site"`
	CrewCapacity int       `json:"crew_capacity"`
}

type MissionPatch struct {
	Name         *string
	LaunchDate   *time.Time
	LaunchSite   *string
	LandingDate  *time.Time
	LandingSite  *string
	CrewCapacity *int
}

func (m *Mission) Apply(p MissionPatch) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.LaunchDate != nil {
		m.LaunchDate = *p.LaunchDate
	}
	if p.LaunchSite != nil {
		m.LaunchSite = *p.LaunchSite
	}
	if p.LandingDate != nil {
		m.LandingDate = *p.LandingDate
	}
	if p.LandingSite != nil {
		m.LandingSite = *p.LandingSite
	}
	if p.CrewCapacity != nil {
		m.CrewCapacity = *p.CrewCapacity
	}
}

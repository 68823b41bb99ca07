package model

import (
	"time"

	"github.com/cvelens/cvelens/cvelens/db"
)

const (
	ProjectTableName = "projects"

	// ProjectDependencyJoinTable holds upstream/downstream edges between projects
	ProjectDependencyJoinTable = "project_dependencies"
)

type ProjectModel struct {
	ID         uint   `gorm:"column:id;primary_key"`
	Key        string `gorm:"column:key;unique_index;not null"`
	Name       string `gorm:"column:name;not null"`
	TeamID     *uint  `gorm:"column:team_id;index"`
	ExternalID string `gorm:"column:external_id"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// UpstreamDependencies are projects that must deliver before this one.
	UpstreamDependencies []ProjectModel `gorm:"many2many:project_dependencies;jointable_foreignkey:downstream_id;association_jointable_foreignkey:upstream_id"`
}

func NewProjectModel(project db.Project) ProjectModel {
	return ProjectModel{
		ID:         project.ID,
		Key:        project.Key,
		Name:       project.Name,
		TeamID:     project.TeamID,
		ExternalID: project.ExternalID,
	}
}

func (ProjectModel) TableName() string {
	return ProjectTableName
}

func (m ProjectModel) Inflate() db.Project {
	return db.Project{
		ID:         m.ID,
		Key:        m.Key,
		Name:       m.Name,
		TeamID:     m.TeamID,
		ExternalID: m.ExternalID,
	}
}

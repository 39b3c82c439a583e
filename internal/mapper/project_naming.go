package mapper

import (
	"strings"

	"github.com/arnavsurve/xcgen/internal/model"
)

const projectNamePlaceholder = "$(project_name)"

// ProjectNameAndOrganizationMapper applies the Config's organization_name
// and xcode_project_name options (spec.md §4.G rule 6). The project name
// template may contain $(project_name), substituted with the project's
// logical name; when multiple xcode_project_name options are present in
// Config.Options, the first occurrence wins (spec.md §3, §8 S3).
type ProjectNameAndOrganizationMapper struct{}

func (ProjectNameAndOrganizationMapper) Name() string { return "ProjectNameAndOrganizationMapper" }

func (m ProjectNameAndOrganizationMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	if template, ok := ctx.Config.XcodeProjectNameTemplate(); ok {
		p.FileName = strings.ReplaceAll(template, projectNamePlaceholder, p.Name)
	}
	if org, ok := ctx.Config.OrganizationName(); ok && p.OrganizationName == "" {
		p.OrganizationName = org
	}
	return p, nil, nil
}

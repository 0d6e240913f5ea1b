// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	OutputDirUnsetId Id = iota + 1
	SkillsRootNotFoundId
	NoSkillsMatchedId
	ConfigLoadFailedId
	ArchiveFailedId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation links about this issue type
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	outputDirUnsetIssue = &Issue{
		id: OutputDirUnsetId,
		mdMsg: `
# No output directory configured!

skillex needs to know where to write packaged skill archives.

## Things you can try:
- Set the DC environment variable to your downloads/output base:
~~~
$ export DC=~/Downloads/claude
~~~
  Archives will then be written to $DC/skills/.

- Or set an explicit output directory:
~~~
$ export SKILLEX_OUTPUT_DIR=~/archives/skills
~~~

- Or add it to your skillex.toml:
~~~toml
output_dir = "/home/user/archives/skills"
~~~`,
	}

	skillsRootNotFoundIssue = &Issue{
		id: SkillsRootNotFoundId,
		mdMsg: `
# No skills directory found!

The skills directory does not exist yet, so there is nothing to package.

## Default location:
- ~/.claude/skills/

## Things you can try:
- Create the directory and add a skill:
~~~
$ mkdir -p ~/.claude/skills/my-skill
~~~

- Or point skillex at a different directory:
~~~
$ export SKILLEX_SKILLS_DIR=/path/to/skills
~~~`,
	}

	noSkillsMatchedIssue = &Issue{
		id: NoSkillsMatchedId,
		mdMsg: `
# No skills matched!

No skill directory name contains the pattern you supplied.

## Things you can try:
- List all available skills:
~~~
$ skillex list
~~~

- Remember that matching is a case-insensitive substring check, not a glob:
~~~
$ skillex zip py        # matches python-pro, numpy-helper, ...
~~~

- Run without a pattern to package every skill:
~~~
$ skillex zip
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the skillex configuration file.

## Configuration file locations:
- Linux: ~/.config/skillex/skillex.toml
- macOS: ~/Library/Application Support/skillex/skillex.toml
- Windows: %APPDATA%\skillex\skillex.toml
- Or a skillex.toml in the current directory

## Things you can try:
- Check the TOML syntax
- Remove the config file to use defaults

## Example configuration:
~~~toml
skills_dir = "/home/user/.claude/skills"
output_dir = "/home/user/Downloads/claude/skills"

[ui]
verbose = false
~~~`,
	}

	archiveFailedIssue = &Issue{
		id: ArchiveFailedId,
		mdMsg: `
# Archive creation failed!

One or more skills could not be packaged.

## Common causes:
- The skill directory was removed while packaging was running
- The output disk is full
- A file inside the skill could not be read

## Things you can try:
- Re-run with verbose output for per-skill details:
~~~
$ skillex zip -v
~~~

- Check free space on the output filesystem
- Check read permissions on the skill directory

No partial archive is left behind: a failed skill either keeps its previous
archive or has none.`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The output directory is not writable
- A skill file is not readable

## Things you can try:
- Check directory permissions on the output location
- Choose an output directory you own:
~~~
$ export SKILLEX_OUTPUT_DIR=~/archives/skills
~~~`,
	}

	issues = map[Id]*Issue{
		outputDirUnsetIssue.Id():     outputDirUnsetIssue,
		skillsRootNotFoundIssue.Id(): skillsRootNotFoundIssue,
		noSkillsMatchedIssue.Id():    noSkillsMatchedIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		archiveFailedIssue.Id():      archiveFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}

package shell

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

// prompt renders the PS1 template: \u user, \h host, \w working directory
// with the home prefix contracted to ~, and \$ either $ or # for root.
func (s *Shell) prompt() string {
	env := s.Interp.Env()

	template := env.Getenv(EnvPrompt)
	if template == "" {
		template = s.Config.Prompt
	}
	if template == "" {
		template = defaultPrompt()
	}

	out := strings.ReplaceAll(template, `\u`, env.Getenv(EnvUser))
	out = strings.ReplaceAll(out, `\h`, env.Getenv(EnvHostname))

	pwd := s.Interp.Getwd()
	if home := env.Getenv(EnvHome); home != "" && strings.HasPrefix(pwd, home) {
		pwd = "~" + strings.TrimPrefix(pwd, home)
	}
	out = strings.ReplaceAll(out, `\w`, pwd)

	if os.Getuid() == 0 {
		out = strings.ReplaceAll(out, `\$`, "#")
	} else {
		out = strings.ReplaceAll(out, `\$`, "$")
	}

	return out
}

// defaultPrompt colors the user@host and directory segments when the output
// supports it; color.NoColor already accounts for dumb terminals and
// redirected output.
func defaultPrompt() string {
	if color.NoColor {
		return DefaultPrompt
	}
	userHost := color.New(color.FgGreen, color.Bold).Sprint(`\u@\h`)
	dir := color.New(color.FgBlue, color.Bold).Sprint(`\w`)
	return userHost + ":" + dir + `\$ `
}

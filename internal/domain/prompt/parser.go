package prompt

import "strings"

// ParsedScreen is one screen request extracted from a prompt.
type ParsedScreen struct {
	Name        string
	Description string
}

// Parse splits a prompt into screen requests. An empty or whitespace-only
// prompt yields nil.
func Parse(text string) []ParsedScreen {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(trimmed, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	if screens := parseColonBlocks(lines); len(screens) > 0 {
		return screens
	}
	if screens := parseBullets(lines); len(screens) > 0 {
		return screens
	}
	if len(lines) == 1 && strings.Contains(trimmed, ",") {
		return parseCommaList(trimmed)
	}
	return parseLines(lines)
}

// parseColonBlocks handles the header format, where a line ending with a
// colon names a screen and the lines below it form the description:
//
//	Login:
//	Email and password fields.
//
// Lines before the first header are dropped. Returns nil when no line ends
// with a colon.
func parseColonBlocks(lines []string) []ParsedScreen {
	terminated := false
	for _, line := range lines {
		if strings.HasSuffix(line, ":") {
			terminated = true
			break
		}
	}
	if !terminated {
		return nil
	}

	var screens []ParsedScreen
	current := -1
	for _, line := range lines {
		if strings.HasSuffix(line, ":") {
			screens = append(screens, ParsedScreen{
				Name: strings.TrimSpace(strings.TrimSuffix(line, ":")),
			})
			current = len(screens) - 1
			continue
		}
		if current < 0 {
			continue
		}
		if screens[current].Description == "" {
			screens[current].Description = line
		} else {
			screens[current].Description += "\n" + line
		}
	}
	return screens
}

// parseBullets handles "- " lists; a colon inside a bullet splits it into
// name and description. Returns nil when no line is a bullet.
func parseBullets(lines []string) []ParsedScreen {
	var screens []ParsedScreen
	found := false
	for _, line := range lines {
		if !strings.HasPrefix(line, "- ") {
			continue
		}
		found = true
		screens = append(screens, splitNameColon(strings.TrimSpace(line[2:])))
	}
	if !found {
		return nil
	}
	return screens
}

func parseCommaList(text string) []ParsedScreen {
	var screens []ParsedScreen
	for _, item := range strings.Split(text, ",") {
		if name := strings.TrimSpace(item); name != "" {
			screens = append(screens, ParsedScreen{Name: name})
		}
	}
	return screens
}

func parseLines(lines []string) []ParsedScreen {
	screens := make([]ParsedScreen, 0, len(lines))
	for _, line := range lines {
		screens = append(screens, splitNameColon(line))
	}
	return screens
}

func splitNameColon(text string) ParsedScreen {
	if i := strings.Index(text, ":"); i >= 0 {
		return ParsedScreen{
			Name:        strings.TrimSpace(text[:i]),
			Description: strings.TrimSpace(text[i+1:]),
		}
	}
	return ParsedScreen{Name: text}
}

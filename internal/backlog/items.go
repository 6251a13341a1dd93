package backlog

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	itemHeaderRe  = regexp.MustCompile(`^###\s+([A-Z][A-Z0-9_]*-\d+)\s*\|\s*(.+?)\s*$`)
	groupHeaderRe = regexp.MustCompile(`^###\s+([A-Z][A-Z0-9_]*)-(\d+)\s+(?:à|to)\s+(?:[A-Z][A-Z0-9_]*-)?(\d+)\s*\|\s*(.+?)\s*$`)
	severityRe    = regexp.MustCompile(`^(P\d)\s*(?:-\s*\S.*)?$`)
	epochMillisRe = regexp.MustCompile(`(\d{13})`)
	epochSecsRe   = regexp.MustCompile(`(\d{10})`)
)

// Metadata labels are matched case-sensitively against the French field
// names used by the document grammar. Unrecognized bold-prefixed lines are
// skipped, which keeps the grammar forward-compatible.
const (
	labelComponent = "Composant"
	labelModule    = "Module"
	labelSeverity  = "Sévérité"
	labelPriority  = "Priorité"
	labelEffort    = "Effort"
)

// listTarget identifies which list field an in-progress bold section label
// feeds. A blank line or the next label resets it.
type listTarget int

const (
	targetNone listTarget = iota
	targetSpecs
	targetReproduction
	targetCriteria
	targetDependencies
	targetConstraints
	targetScreens
	targetScreenshots
)

var listLabels = map[string]listTarget{
	"Spécifications":          targetSpecs,
	"Reproduction":            targetReproduction,
	"Critères d'acceptation":  targetCriteria,
	"Dépendances":             targetDependencies,
	"Contraintes":             targetConstraints,
	"Écrans":                  targetScreens,
	"Captures d'écran":        targetScreenshots,
}

// parseItem consumes one ticket block: the level-3 header line through the
// terminating separator (or the block's end). The caller has already
// verified the header against itemHeaderRe.
func (p *Parser) parseItem(lines []string, position int) *Item {
	header := itemHeaderRe.FindStringSubmatch(strings.TrimSpace(lines[0]))
	emoji, title := splitEmoji(header[2])
	it := &Item{
		ID:       header[1],
		Type:     typePrefix(header[1]),
		Title:    title,
		Emoji:    emoji,
		Origin:   OriginVerbatim,
		Position: position,
	}

	end := len(lines)
	for i := 1; i < len(lines); i++ {
		if classifyLine(lines[i]) == lineSeparator {
			end = i
			break
		}
	}
	it.RawMarkdown = trimBlankEdges(strings.Join(lines[:end], "\n"))

	target := targetNone
	inDescription := false
	var description, story []string

	for _, line := range lines[1:end] {
		trimmed := strings.TrimSpace(line)
		switch classifyLine(line) {
		case lineBlank:
			target = targetNone
			inDescription = false

		case lineBoldLabel:
			inDescription = false
			m := boldLabelRe.FindStringSubmatch(trimmed)
			label, value := m[1], strings.TrimSpace(m[2])
			if tgt, ok := listLabels[label]; ok {
				target = tgt
				continue
			}
			target = targetNone
			p.setMetadata(it, label, value)

		case lineQuote:
			inDescription = false
			story = append(story, strings.TrimSpace(strings.TrimPrefix(trimmed, ">")))

		case lineCheckbox:
			m := checkboxRe.FindStringSubmatch(trimmed)
			if target == targetCriteria {
				it.Criteria = append(it.Criteria, Criterion{Text: m[2], Checked: m[1] != " "})
			} else {
				p.appendListValue(it, target, m[2])
			}

		case lineBullet:
			m := bulletRe.FindStringSubmatch(trimmed)
			if target == targetCriteria {
				// Checkbox marker absent: checked defaults to false.
				it.Criteria = append(it.Criteria, Criterion{Text: m[1]})
			} else {
				p.appendListValue(it, target, m[1])
			}

		case lineNumbered:
			m := numberedRe.FindStringSubmatch(trimmed)
			p.appendListValue(it, target, m[1])

		case lineImage:
			m := imageRe.FindStringSubmatch(trimmed)
			if target == targetScreenshots {
				it.Screenshots = append(it.Screenshots, p.parseScreenshot(m[1], m[2]))
			} else {
				p.logger.Debug("image outside screenshots section skipped", "ticket", it.ID, "target", m[2])
			}

		default:
			if target != targetNone {
				target = targetNone
				p.logger.Debug("stray text terminated list section", "ticket", it.ID)
				continue
			}
			if inDescription || len(description) == 0 {
				description = append(description, trimmed)
				inDescription = true
			} else {
				p.logger.Debug("text after first paragraph skipped", "ticket", it.ID)
			}
		}
	}

	it.Description = strings.Join(description, "\n")
	it.UserStory = strings.Join(story, " ")
	return it
}

func (p *Parser) setMetadata(it *Item, label, value string) {
	switch label {
	case labelComponent:
		it.Component = value
	case labelModule:
		it.Module = value
	case labelSeverity:
		m := severityRe.FindStringSubmatch(value)
		if m == nil {
			p.logger.Debug("unparseable severity skipped", "ticket", it.ID, "value", value)
			return
		}
		it.Severity = Severity(m[1])
	case labelPriority:
		it.Priority = value
	case labelEffort:
		it.Effort = value
	default:
		p.logger.Debug("unknown metadata label skipped", "ticket", it.ID, "label", label)
	}
}

func (p *Parser) appendListValue(it *Item, target listTarget, value string) {
	switch target {
	case targetSpecs:
		it.Specs = append(it.Specs, value)
	case targetReproduction:
		it.Reproduction = append(it.Reproduction, value)
	case targetDependencies:
		it.Dependencies = append(it.Dependencies, value)
	case targetConstraints:
		it.Constraints = append(it.Constraints, value)
	case targetScreens:
		it.Screens = append(it.Screens, value)
	case targetScreenshots:
		// A bare filename line is accepted in place of image syntax.
		it.Screenshots = append(it.Screenshots, p.parseScreenshot("", value))
	default:
		p.logger.Debug("list item outside labeled section skipped", "ticket", it.ID)
	}
}

// parseScreenshot builds a screenshot record from an image reference. The
// capture timestamp is embedded in the filename by the original capture
// flow; when absent or unparseable the parse time is used.
func (p *Parser) parseScreenshot(alt, target string) Screenshot {
	shot := Screenshot{Filename: strings.TrimSpace(target), Alt: strings.TrimSpace(alt)}
	if m := epochMillisRe.FindStringSubmatch(shot.Filename); m != nil {
		millis, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			shot.AddedAt = millis
			return shot
		}
	}
	if m := epochSecsRe.FindStringSubmatch(shot.Filename); m != nil {
		secs, err := strconv.ParseInt(m[1], 10, 64)
		if err == nil {
			shot.AddedAt = secs * 1000
			return shot
		}
	}
	shot.AddedAt = p.now().UnixMilli()
	return shot
}

// splitEmoji separates a leading emoji glyph from the title text. A leading
// token counts as an emoji when it contains no letters or digits and every
// rune is a symbol, pictograph, or joiner.
func splitEmoji(title string) (emoji, rest string) {
	title = strings.TrimSpace(title)
	first, remainder, ok := strings.Cut(title, " ")
	if !ok || !isEmojiToken(first) {
		return "", title
	}
	return first, strings.TrimSpace(remainder)
}

func isEmojiToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return false
		case r >= 0x1F000, r == 0xFE0F, r == 0x200D, r == 0x20E3:
		case unicode.Is(unicode.So, r) || unicode.Is(unicode.Sk, r):
		default:
			return false
		}
	}
	return true
}

// trimBlankEdges removes leading and trailing blank lines while keeping
// interior spacing byte-exact.
func trimBlankEdges(text string) string {
	lines := splitLines(text)
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

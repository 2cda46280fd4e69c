package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cory-johannsen/bossgen/internal/game/boss"
)

const (
	singleRule = "-------------------------------------------------"
	groupRule  = "**********************************************"
	footnote   = " * Rewards on a scenario case that no one died,\nand no +20% Bonus from declining dropped item."
)

// Casers carry state and are not safe for concurrent use; build one per call.
func upper(s string) string { return cases.Upper(language.Und).String(s) }

func title(s string) string { return cases.Title(language.Und).String(s) }

// Renderer formats encounters as text. Defense values are shown at their
// in-combat value, half the stored stat.
type Renderer struct {
	color   bool
	printer *message.Printer
}

// NewRenderer creates a Renderer. An empty locale prints plain integers.
//
// Postcondition: Returns a Renderer or an error if locale is not a valid BCP 47 tag.
func NewRenderer(color bool, locale string) (*Renderer, error) {
	r := &Renderer{color: color}
	if locale != "" {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
		}
		r.printer = message.NewPrinter(tag)
	}
	return r, nil
}

func (r *Renderer) paint(color, text string) string {
	if !r.color {
		return text
	}
	return Colorize(color, text)
}

func (r *Renderer) num(n int) string {
	if r.printer == nil {
		return strconv.Itoa(n)
	}
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) difficultyLine(b *strings.Builder, d boss.Difficulty, specified bool) {
	if !specified {
		return
	}
	fmt.Fprintf(b, " %s\n", r.paint(BrightMagenta, upper(d.String())+" DIFFICULTY"))
}

func (r *Renderer) rewards(b *strings.Builder, rw boss.Reward) {
	b.WriteString(" Rewards* :\n")
	fmt.Fprintf(b, "  • %s XP\n", r.paint(Green, r.num(rw.Experience)))
	fmt.Fprintf(b, "  • %s (C)\n", r.paint(Yellow, r.num(rw.Currency)))
	fmt.Fprintf(b, "  • %s Item(s)\n", r.paint(Cyan, rw.Items))
	b.WriteString("\n")
	b.WriteString(r.paint(Dim, footnote))
	b.WriteString("\n")
}

// RenderEncounter formats a single boss and its reward.
func (r *Renderer) RenderEncounter(enc boss.Encounter) string {
	var b strings.Builder
	s := enc.Boss.Stats

	b.WriteString(singleRule + "\n")
	fmt.Fprintf(&b, " %s\n", r.paint(Bold+BrightYellow, fmt.Sprintf("BOSS - LV. %d", enc.Boss.Level)))
	r.difficultyLine(&b, enc.Boss.Difficulty, enc.Boss.DifficultySpecified)
	b.WriteString("\n")
	b.WriteString(" STATS:\n")
	fmt.Fprintf(&b, " HP: %s\n", r.paint(BrightRed, r.num(enc.Boss.HP)))
	fmt.Fprintf(&b, " P. ATK: %s\n", r.num(s.PhysicalAttack))
	fmt.Fprintf(&b, " M. ATK: %s\n", r.num(s.MagicAttack))
	fmt.Fprintf(&b, " P. DEF: %s\n", r.num(s.EffectivePhysicalDefense()))
	fmt.Fprintf(&b, " M. DEF: %s\n", r.num(s.EffectiveMagicDefense()))
	b.WriteString(singleRule + "\n")
	r.rewards(&b, enc.Reward)
	b.WriteString(singleRule + "\n")
	return b.String()
}

// RenderGroup formats a multi-boss encounter, numbering each member.
func (r *Renderer) RenderGroup(g boss.Group) string {
	var b strings.Builder

	b.WriteString(groupRule + "\n")
	fmt.Fprintf(&b, "     %s\n", r.paint(Bold+BrightYellow, "-------- MULTI-BOSS FIGHT --------"))
	r.difficultyLine(&b, g.Difficulty, g.DifficultySpecified)
	b.WriteString("\n")
	for i, m := range g.Members {
		fmt.Fprintf(&b, " Boss #%d Stats:\n", i+1)
		fmt.Fprintf(&b, " LV. %d\n", m.Level)
		fmt.Fprintf(&b, " HP: %s\n", r.paint(BrightRed, r.num(m.HP)))
		fmt.Fprintf(&b, " PATK: %s\n", r.num(m.Stats.PhysicalAttack))
		fmt.Fprintf(&b, " MATK: %s\n", r.num(m.Stats.MagicAttack))
		fmt.Fprintf(&b, " PDEF: %s\n", r.num(m.Stats.EffectivePhysicalDefense()))
		fmt.Fprintf(&b, " MDEF: %s\n", r.num(m.Stats.EffectiveMagicDefense()))
		b.WriteString("\n")
	}
	b.WriteString(singleRule + "\n")
	r.rewards(&b, g.Reward)
	b.WriteString("\n")
	b.WriteString(groupRule + "\n")
	return b.String()
}

// RenderError formats a generation failure. Invalid difficulties include the
// minimum viable tier for the party.
func (r *Renderer) RenderError(err error) string {
	var ide *boss.InvalidDifficultyError
	if !errors.As(err, &ide) {
		return fmt.Sprintf(" %s %v\n", r.paint(BrightRed, "Error:"), err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %s Too low difficulty!\n", r.paint(BrightRed, "Error:"))
	if !ide.Viable {
		fmt.Fprintf(&b, " For LV %d party, no Boss Difficulty is high enough.\n", ide.PartyLevel)
		return b.String()
	}
	fmt.Fprintf(&b, " For LV %d party, Boss Difficulty must be at least on %s.\n",
		ide.PartyLevel, r.paint(Bold, title(ide.Minimum.String())))
	return b.String()
}

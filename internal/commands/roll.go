package commands

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/tellebma/template-discord-bot/internal/command"
	"github.com/tellebma/template-discord-bot/internal/errs"
)

var (
	rollTokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	rollDiceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	rollOps        = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

type rollTerm struct {
	value  int
	desc   string
	op     string
	isDice bool
}

// Roll evaluates a dice formula like "2d6+1d4*2-3".
func Roll() *command.Command {
	return &command.Command{
		Name:        "roll",
		Description: "Roll dice like `2d20+1d6-2`",
		Category:    "fun",
		Options: []*command.Option{
			{
				Type:        command.TypeString,
				Name:        "formula",
				Description: "Supports `2d6+1d4*2-3` and similar math",
				Required:    true,
				MaxLength:   command.IntPtr(100),
			},
		},
		Handler: func(ctx *command.Context) error {
			formula := strings.ReplaceAll(ctx.String("formula"), " ", "")
			pretty, total, err := evaluateRoll(formula)
			if err != nil {
				return err
			}
			return ctx.Reply(fmt.Sprintf("🎲 `%s` = %s = **%d**", formula, pretty, total))
		},
	}
}

// evaluateRoll parses and evaluates a formula, returning the per-term detail
// string and the total.
func evaluateRoll(formula string) (string, int, error) {
	tokens := rollTokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return "", 0, errs.NewValidation("formula", "string", formula,
			"could not parse formula, try something like `2d6+1d4*2-3`")
	}

	var terms []rollTerm
	currentOp := "+"
	for _, token := range tokens {
		if rollOps[token] {
			currentOp = token
			continue
		}
		val, desc, err := evaluateRollToken(token)
		if err != nil {
			return "", 0, errs.NewValidation("formula", "string", token, err.Error())
		}
		terms = append(terms, rollTerm{
			value:  val,
			desc:   desc,
			op:     currentOp,
			isDice: strings.Contains(desc, "["),
		})
	}

	// Fold * and / into their left neighbor before summing.
	var merged []rollTerm
	for _, t := range terms {
		if t.op == "*" || t.op == "/" {
			if len(merged) == 0 {
				return "", 0, errs.NewValidation("formula", "string", formula,
					"cannot multiply or divide by nothing")
			}
			prev := merged[len(merged)-1]
			merged = merged[:len(merged)-1]

			var newVal int
			switch t.op {
			case "*":
				newVal = prev.value * t.value
			case "/":
				if t.value == 0 {
					return "", 0, errs.NewValidation("formula", "string", formula,
						"cannot divide by zero")
				}
				newVal = prev.value / t.value
			}
			merged = append(merged, rollTerm{
				value:  newVal,
				desc:   fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
				op:     prev.op,
				isDice: prev.isDice || t.isDice,
			})
		} else {
			merged = append(merged, t)
		}
	}

	total := 0
	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		}
		details = append(details, t.desc)
		switch t.op {
		case "+":
			total += t.value
		case "-":
			total -= t.value
		}
	}

	return strings.Join(details, ""), total, nil
}

// evaluateRollToken resolves one token: either an XdY dice group or a plain
// number.
func evaluateRollToken(token string) (int, string, error) {
	if rollDiceRegex.MatchString(token) {
		matches := rollDiceRegex.FindStringSubmatch(token)
		countStr, sidesStr := matches[1], matches[2]

		count := 1
		if countStr != "" {
			n, err := strconv.Atoi(countStr)
			if err != nil {
				return 0, "", fmt.Errorf("invalid dice count in `%s`", token)
			}
			count = n
		}

		sides, err := strconv.Atoi(sidesStr)
		if err != nil || sides < 2 {
			return 0, "", fmt.Errorf("invalid dice sides in `%s`", token)
		}
		if count > 100 || sides > 1000 {
			return 0, "", fmt.Errorf("too big, max 100 dice with 1000 sides")
		}

		sum := 0
		rolls := make([]string, 0, count)
		for i := 0; i < count; i++ {
			r := rand.Intn(sides) + 1
			sum += r
			rolls = append(rolls, strconv.Itoa(r))
		}
		return sum, fmt.Sprintf("`%s` [%s]", token, strings.Join(rolls, ", ")), nil
	}

	num, err := strconv.Atoi(token)
	if err != nil {
		return 0, "", fmt.Errorf("`%s` is not a number or dice group", token)
	}
	return num, fmt.Sprintf("`%d`", num), nil
}

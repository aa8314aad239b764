package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/rustyeddy/tradejournal/collect"
	"github.com/rustyeddy/tradejournal/journal"
)

// confirm asks a yes/no question, defaulting to no.
func (rc *RootConfig) confirm(prompt string) (bool, error) {
	if rc.Confirm != nil {
		return rc.Confirm(prompt)
	}
	confirmed := false
	err := survey.AskOne(&survey.Confirm{
		Message: prompt,
		Default: false,
	}, &confirmed)
	return confirmed, err
}

// askForm fills f interactively. Values already set are offered as
// defaults.
func askForm(f *collect.Form) error {
	err := survey.AskOne(&survey.Input{
		Message: "Profit/Loss:",
		Help:    "Realised profit or loss of the trade, e.g. 125.50 or -40",
		Default: f.ProfitLoss,
	}, &f.ProfitLoss, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		if strings.TrimSpace(s) == "" {
			return collect.ErrProfitLossRequired
		}
		if _, ok := journal.ParseAmount(s); !ok {
			return fmt.Errorf("not a number: %q", s)
		}
		return nil
	}))
	if err != nil {
		return err
	}

	inputs := []struct {
		msg, help string
		dst       *string
	}{
		{"Daily gain (%):", "Account gain for the day in percent", &f.DailyGain},
		{"Strategy:", "Name of the setup or strategy traded", &f.Strategy},
		{"Risk:", "Amount risked on the trade; leave blank if unknown", &f.Risk},
		{"Platform:", "Broker or platform the trade was placed on", &f.Platform},
	}
	for _, in := range inputs {
		if err := survey.AskOne(&survey.Input{
			Message: in.msg,
			Help:    in.help,
			Default: *in.dst,
		}, in.dst); err != nil {
			return err
		}
	}

	err = survey.AskOne(&survey.Input{
		Message: "Confidence (1-10):",
		Help:    "How confident you were entering the trade; blank to skip",
		Default: f.Confidence,
	}, &f.Confidence, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, ok := collect.ParseConfidence(s); !ok {
			return fmt.Errorf("confidence must be between %d and %d", collect.MinConfidence, collect.MaxConfidence)
		}
		return nil
	}))
	if err != nil {
		return err
	}

	emotion := f.Emotion
	if emotion == "" {
		emotion = "skip"
	}
	err = survey.AskOne(&survey.Select{
		Message: "Emotion:",
		Options: append([]string{"skip"}, journal.EmotionNames()...),
		Default: emotion,
	}, &emotion)
	if err != nil {
		return err
	}
	if emotion == "skip" {
		emotion = ""
	}
	f.Emotion = emotion

	return survey.AskOne(&survey.Input{
		Message: "Screenshot (path):",
		Help:    "Image file to embed with the trade; blank for none",
		Default: f.Screenshot,
	}, &f.Screenshot, survey.WithValidator(func(val interface{}) error {
		s, _ := val.(string)
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		if _, err := os.Stat(s); err != nil {
			return err
		}
		return nil
	}))
}

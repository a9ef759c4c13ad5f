// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package prompts

import (
	"errors"

	"github.com/manifoldco/promptui"
)

var ErrInterrupted = errors.New("prompt interrupted")

type Prompter interface {
	CapturePassword(promptStr string) (string, error)
}

type realPrompter struct{}

// Global variable that can be replaced during testing
var promptUIRunner = func(prompt promptui.Prompt) (string, error) {
	return prompt.Run()
}

func NewPrompter() Prompter {
	return &realPrompter{}
}

// CapturePassword reads a secret without echoing it. An empty password is
// accepted, keystores may be encrypted with one.
func (*realPrompter) CapturePassword(promptStr string) (string, error) {
	prompt := promptui.Prompt{
		Label:       promptStr,
		Mask:        '*',
		HideEntered: true,
	}
	password, err := promptUIRunner(prompt)
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
			return "", ErrInterrupted
		}
		return "", err
	}
	return password, nil
}

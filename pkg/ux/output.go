// Copyright (C) 2025, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/libevm/common"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const separatorWidth = 46

var Logger *UserLog

// UserLog writes command results to the terminal and mirrors every line
// into the log file.
type UserLog struct {
	log    logging.Logger
	Writer io.Writer
}

// NewUserLog sets the process wide Logger. Later calls keep the first one.
func NewUserLog(log logging.Logger, userwriter io.Writer) {
	if Logger == nil {
		Logger = &UserLog{
			log:    log,
			Writer: userwriter,
		}
	}
}

func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	if ul == nil {
		fmt.Println(line)
		return
	}
	fmt.Fprintln(ul.Writer, line)
	ul.log.Info(line)
}

// PrintAddress prints a "label: address" result line. The log entry carries
// the address as a field so deployments can be grepped from the log file.
func (ul *UserLog) PrintAddress(label string, address common.Address) {
	if ul == nil {
		fmt.Printf("%s: %s\n", label, address.Hex())
		return
	}
	fmt.Fprintf(ul.Writer, "%s: %s\n", label, address.Hex())
	ul.log.Info("contract address",
		zap.String("label", label),
		zap.Stringer("address", address),
	)
}

func (ul *UserLog) Success(msg string, args ...interface{}) {
	ul.PrintToUser(color.New(color.FgHiGreen).Sprint("✓")+" "+msg, args...)
}

func (ul *UserLog) Separator() {
	ul.PrintToUser("%s", strings.Repeat("=", separatorWidth))
}

// FormatGas renders gas amounts with "_" thousand separators
func FormatGas(gas uint64) string {
	p := message.NewPrinter(language.English)
	return strings.ReplaceAll(p.Sprintf("%d", gas), ",", "_")
}

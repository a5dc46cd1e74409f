// Copyright (C) 2024 XELIS
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package log

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// LogLevel selects which messages are written:
// 0 info/warn/err, 1 adds debug, 2 adds dev, 3 adds mutex tracing.
var LogLevel uint8 = 0

var Stdout io.Writer = os.Stdout
var Stderr io.Writer = os.Stderr

var Reset = "\033[0m"
var Red = "\033[31m"
var Green = "\033[32m"
var Yellow = "\033[33m"
var Purple = "\033[35m"
var Cyan = "\033[36m"
var Bold = "\033[1m"

// DisableColors strips the escape sequences, useful when output is piped.
func DisableColors() {
	Reset, Red, Green, Yellow, Purple, Cyan, Bold = "", "", "", "", "", "", ""
}

func callerPrefix(skip int) string {
	_, file, line, _ := runtime.Caller(skip)
	fileSpl := strings.Split(file, "/")
	debugInfos := strings.Split(fileSpl[len(fileSpl)-1], ".")[0] + ":" + strconv.FormatInt(int64(line), 10)
	for len(debugInfos) < 18 {
		debugInfos = debugInfos + " "
	}

	return debugInfos
}

func write(w io.Writer, color, tag, msg string) {
	w.Write([]byte(callerPrefix(3) + color + tag + msg + Reset))
}

func Info(a ...any) {
	write(Stdout, "", "[INFO]  ", fmt.Sprintln(a...))
}

func Warn(a ...any) {
	write(Stdout, Yellow, "[WARN]  ", fmt.Sprintln(a...))
}
func Warnf(format string, a ...any) {
	write(Stdout, Yellow, "[WARN]  ", fmt.Sprintf(format+"\n", a...))
}

func Err(a ...any) {
	write(Stderr, Red, "[ERR]   ", fmt.Sprintln(a...))
}

func Debug(a ...any) {
	if LogLevel < 1 {
		return
	}
	write(Stdout, Cyan, "[DEBUG] ", fmt.Sprintln(a...))
}
func Debugf(format string, a ...any) {
	if LogLevel < 1 {
		return
	}
	write(Stdout, Cyan, "[DEBUG] ", fmt.Sprintf(format+"\n", a...))
}

func Devf(format string, a ...any) {
	if LogLevel < 2 {
		return
	}
	write(Stdout, Cyan, "[DEV]   ", fmt.Sprintf(format+"\n", a...))
}

// Netf logs API traffic.
func Netf(format string, a ...any) {
	if LogLevel < 2 {
		return
	}
	write(Stdout, Green, "[NET]   ", fmt.Sprintf(format+"\n", a...))
}

// Mutex is called through the sync wrappers, so the caller reported is the
// code taking the lock.
func Mutex(a ...any) {
	if LogLevel < 3 {
		return
	}
	Stdout.Write([]byte(callerPrefix(4) + Purple + "[MUTEX] " + fmt.Sprintln(a...) + Reset))
}

func Fatal(err any) {
	write(Stderr, Red+Bold, "", fmt.Sprintln("[FATAL]", err))
	os.Exit(1)
}

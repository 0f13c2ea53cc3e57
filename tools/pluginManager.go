// Copyright 2016 the RichDEM Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// licence that can be found in the LICENCE.txt file.

package tools

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
)

var println = fmt.Println
var printf = fmt.Printf
var print = fmt.Print
var pathSep string = string(os.PathSeparator)

type PluginToolManager struct {
	workingDirectory string
	mapOfPluginTools map[string]PluginTool
}

func (ptm *PluginToolManager) InitializeTools() {
	// each new tool needs a two-line entry below
	ptm.mapOfPluginTools = make(map[string]PluginTool)

	d8p := new(D8Pointer)
	ptm.mapOfPluginTools[strings.ToLower(d8p.GetName())] = d8p

	rf := new(ResolveFlats)
	ptm.mapOfPluginTools[strings.ToLower(rf.GetName())] = rf

	fd := new(FillDepressions)
	ptm.mapOfPluginTools[strings.ToLower(fd.GetName())] = fd
}

func (ptm *PluginToolManager) GetListOfTools() []PluginTool {
	ret := make([]PluginTool, len(ptm.mapOfPluginTools))
	i := 0
	for _, val := range ptm.mapOfPluginTools {
		ret[i] = val
		i++
	}
	return ret
}

func (ptm *PluginToolManager) Run(toolName string) error {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		println(GetHeaderText(toolName))
		tool.SetToolManager(ptm)
		tool.CollectArguments()
		runtime.GC()
		return nil
	}
	return errors.New("Unrecognized tool name. Type 'listtools' for a list of available tools.\n")
}

func (ptm *PluginToolManager) RunWithArguments(toolName string, args []string) error {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		println(GetHeaderText(toolName))
		tool.SetToolManager(ptm)
		tool.ParseArguments(args)
		runtime.GC()
		return nil
	}
	return errors.New("Unrecognized tool name. Type 'listtools' for a list of available tools.\n")
}

func (ptm *PluginToolManager) GetToolArgDescriptions(toolName string) ([]string, error) {
	trailingSpaces := func(s string, maxLen int) string {
		strLen := len(s)
		sepSpace := maxLen - strLen
		sepStr := " "
		for i := 0; i < sepSpace; i++ {
			sepStr += " "
		}
		return s + sepStr
	}

	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		descEntries := tool.GetArgDescriptions()
		lenToolName := 0
		lenDataType := 0
		for _, val := range descEntries {
			if len(val[0]) > lenToolName {
				lenToolName = len(val[0])
			}
			if len(val[1]) > lenDataType {
				lenDataType = len(val[1])
			}
		}

		lenToolName += 2
		lenDataType += 2

		ret := make([]string, len(descEntries))
		for i, val := range descEntries {
			ret[i] = trailingSpaces(val[0], lenToolName) + trailingSpaces(val[1], lenDataType) + val[2]
		}
		return ret, nil
	}
	return nil, errors.New("Unrecognized tool name. Type 'listtools' for a list of available tools.\n")
}

func (ptm *PluginToolManager) GetToolHelp(toolName string) (string, error) {
	toolName = strings.ToLower(getFormattedToolName(toolName))
	if tool, ok := ptm.mapOfPluginTools[toolName]; ok {
		return tool.GetHelpDocumentation(), nil
	}
	return "", errors.New("Unrecognized tool name. Type 'listtools' for a list of available tools.\n")
}

func (ptm *PluginToolManager) SetWorkingDirectory(wd string) {
	if !strings.HasSuffix(wd, pathSep) {
		wd += pathSep
	}
	ptm.workingDirectory = wd
}

type PluginTool interface {
	GetName() string
	GetDescription() string
	GetHelpDocumentation() string
	CollectArguments()
	ParseArguments([]string)
	GetArgDescriptions() [][]string
	SetToolManager(*PluginToolManager)
}

type PluginToolList []PluginTool

func (ptl PluginToolList) Len() int { return len(ptl) }

func (ptl PluginToolList) Less(i, j int) bool {
	return ptl[i].GetName() < ptl[j].GetName()
}

func (ptl PluginToolList) Swap(i, j int) {
	ptl[i], ptl[j] = ptl[j], ptl[i]
}

func GetHeaderText(str string) string {
	ret := ""
	for i := 0; i < len(str)+4; i++ {
		ret += "*"
	}
	ret += "\n* "
	ret += str
	ret += " *\n"
	for i := 0; i < len(str)+4; i++ {
		ret += "*"
	}
	return ret
}

var maxToolNameLength = 20

func getFormattedToolName(s string) string {
	l := len(s)
	if l > maxToolNameLength {
		l = maxToolNameLength
	}
	return strings.TrimSpace(s[:l])
}

var maxToolDescriptionLength = 55

func getFormattedToolDescription(s string) string {
	l := len(s)
	if l > maxToolDescriptionLength {
		l = maxToolDescriptionLength
	}
	return strings.TrimSpace(s[:l])
}

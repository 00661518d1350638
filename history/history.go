package history

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

const historyFileName = ".dw_history"

// Item is one executed input line.
type Item struct {
	Cmd string
	Ts  int64
}

// NewHistoryHelper loads the history file under dirPath and opens it for appending.
// A history that cannot be opened still works in memory, the error is returned for reporting.
func NewHistoryHelper(dirPath string) (*Helper, error) {
	filePath := path.Join(dirPath, historyFileName)
	h := &Helper{
		items: readItems(filePath),
	}

	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		return h, errors.Wrap(err, "failed to create history folder")
	}
	// open file and create if non-existent
	hFile, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return h, errors.Wrap(err, "failed to open history file")
	}
	h.hFile = hFile
	return h, nil
}

func readItems(filePath string) []Item {
	readFile, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer readFile.Close()

	var lines []Item
	fileScanner := bufio.NewScanner(readFile)
	fileScanner.Split(bufio.ScanLines)
	for fileScanner.Scan() {
		hi := Item{}
		// skip corrupted lines
		if err := json.Unmarshal(fileScanner.Bytes(), &hi); err == nil {
			lines = append(lines, hi)
		}
	}
	return lines
}

// Helper command history helper.
type Helper struct {
	items []Item
	hFile *os.File
}

// AddLog add cmd log into history helper.
// Empty lines and repeats of the previous line are skipped.
func (h *Helper) AddLog(cmd string) {
	if len(strings.TrimSpace(cmd)) == 0 {
		return
	}
	if len(h.items) > 0 && h.items[len(h.items)-1].Cmd == cmd {
		return
	}
	hi := Item{
		Ts:  time.Now().Unix(),
		Cmd: cmd,
	}
	if h.hFile != nil {
		bs, _ := json.Marshal(hi)
		h.hFile.Write(append(bs, '\n'))
	}
	h.items = append(h.items, hi)
}

// List all history items with prefix.
func (h *Helper) List(input string) []Item {
	return lo.Filter(h.items, func(item Item, _ int) bool {
		return strings.HasPrefix(item.Cmd, input)
	})
}

// Commands returns all recorded lines, oldest first.
func (h *Helper) Commands() []string {
	items := h.List("")
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Ts < items[j].Ts
	})
	return lo.Map(items, func(hi Item, _ int) string { return hi.Cmd })
}

func (h *Helper) Close() {
	if h.hFile != nil {
		h.hFile.Close()
	}
}

package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/go-sif/reduce"
	"github.com/go-sif/reduce/types"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser. Paths are gjson paths.
type ParserConf struct {
	KeyPath       string   // Path of the group key. If empty, the group key is derived from the values at GroupPaths.
	GroupPaths    []string // Paths of the columns identifying a group, used when KeyPath is empty
	RowKeyPath    string   // Path of the row key. If empty, the row key is derived from the row's values.
	ValuePaths    []string // Paths of the row values passed to the reducer, in order. Missing values are None.
	CountPath     string   // Path of the row multiplicity, which must be an integer. If empty or missing, each line counts once.
	HeaderLines   int      // The number of lines to ignore from the beginning of the data. Defaults to 0.
	Comment       rune     // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int      // Maximum size in bytes of the buffer used to read lines
}

// Parser produces groups from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// ParseGroups parses JSONL data into groups with a new Parser
func ParseGroups(r io.Reader, conf *ParserConf) ([]reduce.Group, error) {
	return CreateParser(conf).Parse(r)
}

type rowID struct {
	key     types.Key
	content string
}

type groupBuilder struct {
	group reduce.Group
	rows  map[rowID]int // index of each distinct row within group.Rows
}

// Parse reads every line of r. Lines sharing a group key form one Group, in
// order of first appearance. Identical rows within a group are merged into a
// single Row holding their net count, and rows whose net count is zero are dropped.
func (p *Parser) Parse(r io.Reader) ([]reduce.Group, error) {
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		scanner.Scan()
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	var order []types.Key
	builders := make(map[types.Key]*groupBuilder)
	lineNum := p.conf.HeaderLines
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || (p.conf.Comment != 0 && strings.HasPrefix(line, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(line) {
			return nil, fmt.Errorf("line %d is not valid JSON", lineNum)
		}
		groupKey, row, err := p.parseLine(gjson.Parse(line))
		if err != nil {
			return nil, fmt.Errorf("unable to parse line %d: %w", lineNum, err)
		}
		if row.Count == 0 {
			continue
		}
		b, ok := builders[groupKey]
		if !ok {
			b = &groupBuilder{group: reduce.Group{Key: groupKey}, rows: make(map[rowID]int)}
			builders[groupKey] = b
			order = append(order, groupKey)
		}
		if err := b.add(row); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	groups := make([]reduce.Group, 0, len(order))
	for _, k := range order {
		g := builders[k].group
		rows := g.Rows[:0]
		for _, row := range g.Rows {
			if row.Count != 0 {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		g.Rows = rows
		groups = append(groups, g)
	}
	return groups, nil
}

func (b *groupBuilder) add(row reduce.Row) error {
	content, err := types.Tuple(row.Values...).MarshalBinary()
	if err != nil {
		return err
	}
	id := rowID{key: row.Key, content: string(content)}
	if idx, ok := b.rows[id]; ok {
		b.group.Rows[idx].Count += row.Count
		return nil
	}
	b.rows[id] = len(b.group.Rows)
	b.group.Rows = append(b.group.Rows, row)
	return nil
}

func (p *Parser) parseLine(line gjson.Result) (types.Key, reduce.Row, error) {
	var row reduce.Row
	groupKey, err := p.groupKey(line)
	if err != nil {
		return 0, row, err
	}
	row.Values = make([]types.Value, len(p.conf.ValuePaths))
	for i, path := range p.conf.ValuePaths {
		if row.Values[i], err = ToValue(line.Get(path)); err != nil {
			return 0, row, fmt.Errorf("%s: %w", path, err)
		}
	}
	if len(p.conf.RowKeyPath) > 0 {
		v, err := ToValue(line.Get(p.conf.RowKeyPath))
		if err != nil {
			return 0, row, fmt.Errorf("%s: %w", p.conf.RowKeyPath, err)
		}
		row.Key = types.KeyFor(v)
	} else {
		row.Key = types.KeyFor(row.Values...)
	}
	row.Count = 1
	if len(p.conf.CountPath) > 0 {
		count := line.Get(p.conf.CountPath)
		if count.Exists() {
			if count.Type != gjson.Number || !isIntegral(count) {
				return 0, row, fmt.Errorf("%s: count %s is not an integer", p.conf.CountPath, count.Raw)
			}
			row.Count = int(count.Int())
		}
	}
	return groupKey, row, nil
}

func (p *Parser) groupKey(line gjson.Result) (types.Key, error) {
	if len(p.conf.KeyPath) > 0 {
		v, err := ToValue(line.Get(p.conf.KeyPath))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", p.conf.KeyPath, err)
		}
		return types.KeyFor(v), nil
	}
	values := make([]types.Value, len(p.conf.GroupPaths))
	for i, path := range p.conf.GroupPaths {
		v, err := ToValue(line.Get(path))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		values[i] = v
	}
	return types.KeyFor(values...), nil
}

package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// point is a node position in points, y down.
type point struct{ X, Y float64 }

// parsePlain reads node positions from Graphviz "plain" output:
//
//	graph scale width height
//	node name x y width height label style shape color fillcolor
//	edge ...
//	stop
//
// Coordinates are in inches with y up; they are returned in points with
// y flipped against the graph height.
func parsePlain(data []byte) (map[string]point, error) {
	var (
		height  float64
		scale   = 1.0
		out     = make(map[string]point)
		scanner = bufio.NewScanner(bytes.NewReader(data))
	)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		fields, err := tokenize(scanner.Text())
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "graph":
			if len(fields) < 4 {
				return nil, fmt.Errorf("plain: short graph line %q", scanner.Text())
			}
			if scale, err = strconv.ParseFloat(fields[1], 64); err != nil {
				return nil, fmt.Errorf("plain: graph scale: %w", err)
			}
			if height, err = strconv.ParseFloat(fields[3], 64); err != nil {
				return nil, fmt.Errorf("plain: graph height: %w", err)
			}
		case "node":
			if len(fields) < 4 {
				return nil, fmt.Errorf("plain: short node line %q", scanner.Text())
			}
			x, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("plain: node %s x: %w", fields[1], err)
			}
			y, err := strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, fmt.Errorf("plain: node %s y: %w", fields[1], err)
			}
			out[fields[1]] = point{
				X: x * scale * pointsPerInch,
				Y: (height - y) * scale * pointsPerInch,
			}
		case "stop":
			return out, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("plain: %w", err)
	}
	return out, nil
}

// tokenize splits a plain-format line on whitespace, honouring DOT quoted
// strings with backslash escapes.
func tokenize(line string) ([]string, error) {
	var (
		fields []string
		cur    strings.Builder
		quoted bool
		inTok  bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case quoted && c == '"':
			quoted = false
		case quoted:
			cur.WriteByte(c)
		case c == '"':
			quoted, inTok = true, true
		case c == ' ' || c == '\t':
			if inTok {
				fields = append(fields, cur.String())
				cur.Reset()
				inTok = false
			}
		default:
			cur.WriteByte(c)
			inTok = true
		}
	}
	if quoted {
		return nil, fmt.Errorf("plain: unterminated quote in %q", line)
	}
	if inTok {
		fields = append(fields, cur.String())
	}
	return fields, nil
}

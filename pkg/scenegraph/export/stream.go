package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/Faultbox/scenery/pkg/math"
	"github.com/Faultbox/scenery/pkg/render"
	sg "github.com/Faultbox/scenery/pkg/scenegraph"
)

const streamHeader = "# scenery stream"

// A shared subtree renders identically whenever it is entered with the
// same state and model matrix, so that triple names one procedure.
type procKey struct {
	node   *sg.Base
	state  render.State
	matrix math.Mat4
}

type call struct {
	at   int
	name string
}

type block struct {
	rec   *render.Recorder
	calls []call
}

func newBlock() *block { return &block{rec: render.NewRecorder()} }

func (b *block) call(name string) {
	b.calls = append(b.calls, call{at: b.rec.Len(), name: name})
}

func (b *block) write(sb *strings.Builder, indent string) {
	cmds := b.rec.Commands()
	ci := 0
	for i := 0; i <= len(cmds); i++ {
		for ci < len(b.calls) && b.calls[ci].at == i {
			sb.WriteString(indent + "call " + b.calls[ci].name + "\n")
			ci++
		}
		if i < len(cmds) {
			sb.WriteString(indent + cmds[i].String() + "\n")
		}
	}
}

type proc struct {
	name string
	body *block
}

type streamWriter struct {
	tags  *Tags
	rc    *sg.RenderContext
	cur   *block
	procs map[procKey]string
	names map[string]bool
	defs  []proc
}

func writeStream(w io.Writer, root sg.Node, tags *Tags, eye math.Vec3) error {
	s := &streamWriter{
		tags:  tags,
		cur:   newBlock(),
		procs: make(map[procKey]string),
		names: make(map[string]bool),
	}
	top := s.cur
	s.rc = sg.NewRenderContext(top.rec)
	s.rc.Eye = eye
	s.rc.Hook = s.hook
	sg.Render(root, s.rc)

	var sb strings.Builder
	sb.WriteString(streamHeader + "\n")
	for _, p := range s.defs {
		sb.WriteString("def " + p.name + " {\n")
		p.body.write(&sb, "  ")
		sb.WriteString("}\n")
	}
	top.write(&sb, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func (s *streamWriter) hook(n sg.Node, next func()) {
	if !s.tags.Shared(n) {
		next()
		return
	}
	key := procKey{node: n.AsBase(), state: s.rc.State, matrix: s.rc.Matrix()}
	name, ok := s.procs[key]
	if !ok {
		outer, sink := s.cur, s.rc.Sink
		body := newBlock()
		s.cur, s.rc.Sink = body, body.rec
		next()
		s.cur, s.rc.Sink = outer, sink

		name = s.procName(s.tags.ID(n))
		s.procs[key] = name
		s.defs = append(s.defs, proc{name: name, body: body})
	}
	s.cur.call(name)
}

func (s *streamWriter) procName(id string) string {
	base := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '{' || r == '}' {
			return '_'
		}
		return r
	}, id)
	name := base
	for k := 2; s.names[name]; k++ {
		name = fmt.Sprintf("%s@%d", base, k)
	}
	s.names[name] = true
	return name
}

// ParseStream reads a command stream and returns it with every call
// expanded in place. A procedure must be defined before it is called.
func ParseStream(r io.Reader) ([]render.Command, error) {
	procs := make(map[string][]render.Command)
	var (
		main []render.Command
		def  string
		body []render.Command
		in   bool
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		switch {
		case fields[0] == "def":
			if in {
				return nil, fmt.Errorf("line %d: nested def", line)
			}
			if len(fields) != 3 || fields[2] != "{" {
				return nil, fmt.Errorf("line %d: malformed def", line)
			}
			if _, dup := procs[fields[1]]; dup {
				return nil, fmt.Errorf("line %d: procedure %q redefined", line, fields[1])
			}
			def, body, in = fields[1], nil, true
		case text == "}":
			if !in {
				return nil, fmt.Errorf("line %d: unmatched }", line)
			}
			procs[def] = body
			in = false
		case fields[0] == "call":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: malformed call", line)
			}
			cmds, ok := procs[fields[1]]
			if !ok {
				return nil, fmt.Errorf("line %d: undefined procedure %q", line, fields[1])
			}
			if in {
				body = append(body, cmds...)
			} else {
				main = append(main, cmds...)
			}
		default:
			cmd, err := render.ParseCommand(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if in {
				body = append(body, cmd)
			} else {
				main = append(main, cmd)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if in {
		return nil, fmt.Errorf("procedure %q not closed", def)
	}
	return main, nil
}

// ReplayStream parses a command stream and sends it to sink.
func ReplayStream(r io.Reader, sink render.Sink) error {
	cmds, err := ParseStream(r)
	if err != nil {
		return err
	}
	for _, c := range cmds {
		c.Apply(sink)
	}
	return nil
}

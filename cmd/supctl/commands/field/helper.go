package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/marmos91/supercore/cmd/supctl/cmdutil"
	"github.com/marmos91/supercore/pkg/fieldvalue"
	"github.com/marmos91/supercore/pkg/handle"
	"github.com/marmos91/supercore/pkg/supervisor"
	"github.com/spf13/cobra"
)

// fieldFlags holds the node selector plus the --name/--allow-proto
// flags every field subcommand shares.
type fieldFlags struct {
	node       *cmdutil.NodeSelector
	name       string
	allowProto bool
}

func addFieldFlags(cmd *cobra.Command) *fieldFlags {
	ff := &fieldFlags{node: cmdutil.AddNodeSelectorFlags(cmd)}
	cmd.Flags().StringVar(&ff.name, "name", "", "field name")
	cmd.Flags().BoolVar(&ff.allowProto, "allow-proto", false, "permit resolving a PROTO-internal field")
	_ = cmd.MarkFlagRequired("name")
	return ff
}

// resolve resolves the node and field named by ff, returning the
// field's live metadata (kind, MF-ness, count) alongside its ref.
func (ff *fieldFlags) resolve(cmd *cobra.Command, sup *supervisor.Supervisor) (handle.FieldRef, *handle.Field, error) {
	ctx := cmd.Context()
	nodeRef, err := cmdutil.ResolveNode(ctx, sup, *ff.node)
	if err != nil {
		return handle.FieldRef{}, nil, err
	}
	fieldRef, ok := sup.ResolveField(ctx, nodeRef, ff.name, ff.allowProto)
	if !ok {
		return handle.FieldRef{}, nil, fmt.Errorf("no field %q on this node", ff.name)
	}
	f := sup.State().Registry.Field(fieldRef)
	if f == nil {
		return handle.FieldRef{}, nil, fmt.Errorf("field handle went stale immediately")
	}
	return fieldRef, f, nil
}

// parseScalar parses s into a fieldvalue.Scalar of the given kind, per
// the wire's per-kind textual conventions this CLI imposes (the
// protocol itself only ever carries the binary payload).
func parseScalar(kind fieldvalue.Kind, s string) (fieldvalue.Scalar, error) {
	switch kind {
	case fieldvalue.KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Bool(b), nil
	case fieldvalue.KindInt32:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Int32(int32(n)), nil
	case fieldvalue.KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Float(f), nil
	case fieldvalue.KindVec2f:
		v, err := parseFloats(s, 2)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Vec2f([2]float64{v[0], v[1]}), nil
	case fieldvalue.KindVec3f:
		v, err := parseFloats(s, 3)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Vec3f([3]float64{v[0], v[1], v[2]}), nil
	case fieldvalue.KindRotation:
		v, err := parseFloats(s, 4)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Rotation([4]float64{v[0], v[1], v[2], v[3]}), nil
	case fieldvalue.KindColor:
		v, err := parseFloats(s, 3)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Color([3]float64{v[0], v[1], v[2]}), nil
	case fieldvalue.KindString:
		return fieldvalue.String(s), nil
	case fieldvalue.KindNode:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return fieldvalue.Scalar{}, err
		}
		return fieldvalue.Node(int32(n)), nil
	default:
		return fieldvalue.Scalar{}, fmt.Errorf("unsupported kind %s", kind)
	}
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %q", n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid component %q: %w", p, err)
		}
		out[i] = f
	}
	return out, nil
}

// formatScalar renders a scalar for table/JSON display.
func formatScalar(v fieldvalue.Scalar) string {
	switch v.Kind {
	case fieldvalue.KindBool:
		return strconv.FormatBool(v.Bool)
	case fieldvalue.KindInt32:
		return strconv.Itoa(int(v.I32))
	case fieldvalue.KindFloat:
		return strconv.FormatFloat(v.F64, 'f', 4, 64)
	case fieldvalue.KindVec2f:
		return fmt.Sprintf("%.4f, %.4f", v.Vec[0], v.Vec[1])
	case fieldvalue.KindVec3f, fieldvalue.KindColor:
		return fmt.Sprintf("%.4f, %.4f, %.4f", v.Vec[0], v.Vec[1], v.Vec[2])
	case fieldvalue.KindRotation:
		return fmt.Sprintf("%.4f, %.4f, %.4f, %.4f", v.Vec[0], v.Vec[1], v.Vec[2], v.Vec[3])
	case fieldvalue.KindString:
		return v.Str
	case fieldvalue.KindNode:
		return strconv.Itoa(int(v.Node))
	default:
		return ""
	}
}

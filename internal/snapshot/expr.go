// Copyright 2024 The ProveIt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshot

import (
	"fmt"

	"github.com/TensorHusker/ProveIt/internal/syntax"
)

// exprNode is the canonical, serialization-friendly form of a
// syntax.Expr: a tagged union encoded as a plain struct so both
// encoding/json and gopkg.in/yaml.v3 can (de)serialize it without a
// custom Marshaler (spec.md §6's "expressions in their AST form").
// Only the fields relevant to Kind are populated.
type exprNode struct {
	Kind string `json:"kind" yaml:"kind"`

	Level int    `json:"level,omitempty" yaml:"level,omitempty"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Index int    `json:"index,omitempty" yaml:"index,omitempty"`
	Order int    `json:"order,omitempty" yaml:"order,omitempty"`

	Domain   *exprNode `json:"domain,omitempty" yaml:"domain,omitempty"`
	Codomain *exprNode `json:"codomain,omitempty" yaml:"codomain,omitempty"`
	Body     *exprNode `json:"body,omitempty" yaml:"body,omitempty"`
	Func     *exprNode `json:"func,omitempty" yaml:"func,omitempty"`
	Arg      *exprNode `json:"arg,omitempty" yaml:"arg,omitempty"`
	Type     *exprNode `json:"type,omitempty" yaml:"type,omitempty"`
	Left     *exprNode `json:"left,omitempty" yaml:"left,omitempty"`
	Right    *exprNode `json:"right,omitempty" yaml:"right,omitempty"`
	Path     *exprNode `json:"path,omitempty" yaml:"path,omitempty"`
	Base     *exprNode `json:"base,omitempty" yaml:"base,omitempty"`
	Of       *exprNode `json:"of,omitempty" yaml:"of,omitempty"`
	At       *exprNode `json:"at,omitempty" yaml:"at,omitempty"`
	DimName  string    `json:"dim_name,omitempty" yaml:"dim_name,omitempty"`
	Dim      *dimNode  `json:"dim,omitempty" yaml:"dim,omitempty"`

	TypeFam *exprNode `json:"type_fam,omitempty" yaml:"type_fam,omitempty"`
	From    *dimNode  `json:"from,omitempty" yaml:"from,omitempty"`
	To      *dimNode  `json:"to,omitempty" yaml:"to,omitempty"`
	Faces   []faceEntryNode `json:"faces,omitempty" yaml:"faces,omitempty"`

	Equivalences []glueEquivNode `json:"equivalences,omitempty" yaml:"equivalences,omitempty"`
}

type dimNode struct {
	Kind string `json:"kind" yaml:"kind"` // "zero", "one", "var"
	Var  int    `json:"var,omitempty" yaml:"var,omitempty"`
}

type faceNode struct {
	Kind string    `json:"kind" yaml:"kind"` // "true", "eq", "and"
	Var  int       `json:"var,omitempty" yaml:"var,omitempty"`
	Val  bool      `json:"val,omitempty" yaml:"val,omitempty"`
	L    *faceNode `json:"l,omitempty" yaml:"l,omitempty"`
	R    *faceNode `json:"r,omitempty" yaml:"r,omitempty"`
}

type faceEntryNode struct {
	Face  faceNode `json:"face" yaml:"face"`
	Value exprNode `json:"value" yaml:"value"`
}

type glueEquivNode struct {
	Face        faceNode `json:"face" yaml:"face"`
	Type        exprNode `json:"type" yaml:"type"`
	Equivalence exprNode `json:"equivalence" yaml:"equivalence"`
}

func encodeDim(d syntax.Dim) *dimNode {
	switch d.Kind {
	case syntax.DimZero:
		return &dimNode{Kind: "zero"}
	case syntax.DimOne:
		return &dimNode{Kind: "one"}
	default:
		return &dimNode{Kind: "var", Var: int(d.Var)}
	}
}

func decodeDim(n *dimNode) (syntax.Dim, error) {
	if n == nil {
		return syntax.Dim{}, fmt.Errorf("missing dimension")
	}
	switch n.Kind {
	case "zero":
		return syntax.DZero(), nil
	case "one":
		return syntax.DOne(), nil
	case "var":
		return syntax.DVar(syntax.DimVar(n.Var)), nil
	default:
		return syntax.Dim{}, fmt.Errorf("unknown dimension kind %q", n.Kind)
	}
}

func encodeFace(f syntax.Face) faceNode {
	switch f.Kind {
	case syntax.FaceTrue:
		return faceNode{Kind: "true"}
	case syntax.FaceEq:
		return faceNode{Kind: "eq", Var: int(f.Var), Val: f.Val}
	default:
		l := encodeFace(*f.L)
		r := encodeFace(*f.R)
		return faceNode{Kind: "and", L: &l, R: &r}
	}
}

func decodeFace(n faceNode) (syntax.Face, error) {
	switch n.Kind {
	case "true":
		return syntax.True(), nil
	case "eq":
		return syntax.Eq(syntax.DimVar(n.Var), n.Val), nil
	case "and":
		if n.L == nil || n.R == nil {
			return syntax.Face{}, fmt.Errorf("and face missing operand")
		}
		l, err := decodeFace(*n.L)
		if err != nil {
			return syntax.Face{}, err
		}
		r, err := decodeFace(*n.R)
		if err != nil {
			return syntax.Face{}, err
		}
		return syntax.And(l, r), nil
	default:
		return syntax.Face{}, fmt.Errorf("unknown face kind %q", n.Kind)
	}
}

func encodeFaces(faces []syntax.FaceEntry) []faceEntryNode {
	out := make([]faceEntryNode, len(faces))
	for i, f := range faces {
		out[i] = faceEntryNode{Face: encodeFace(f.Face), Value: *encodeExpr(f.Value)}
	}
	return out
}

func decodeFaces(nodes []faceEntryNode) ([]syntax.FaceEntry, error) {
	out := make([]syntax.FaceEntry, len(nodes))
	for i, n := range nodes {
		face, err := decodeFace(n.Face)
		if err != nil {
			return nil, err
		}
		val, err := decodeExpr(&n.Value)
		if err != nil {
			return nil, err
		}
		out[i] = syntax.FaceEntry{Face: face, Value: val}
	}
	return out, nil
}

// encodeExpr converts a syntax.Expr into its canonical serializable
// form. A nil e encodes as a nil *exprNode (used for the optional
// construction target).
func encodeExpr(e syntax.Expr) *exprNode {
	if e == nil {
		return nil
	}
	switch x := e.(type) {
	case *syntax.TypeExpr:
		return &exprNode{Kind: "type", Level: int(x.Level)}
	case *syntax.Var:
		return &exprNode{Kind: "var", Name: x.Name.String(), Index: x.Index}
	case *syntax.Pi:
		return &exprNode{Kind: "pi", Name: x.Name.String(), Domain: encodeExpr(x.Domain), Codomain: encodeExpr(x.Codomain)}
	case *syntax.Lambda:
		return &exprNode{Kind: "lambda", Name: x.Name.String(), Body: encodeExpr(x.Body)}
	case *syntax.App:
		return &exprNode{Kind: "app", Func: encodeExpr(x.Func), Arg: encodeExpr(x.Arg)}
	case *syntax.Path:
		return &exprNode{Kind: "path", Type: encodeExpr(x.Type), Left: encodeExpr(x.Left), Right: encodeExpr(x.Right)}
	case *syntax.PathLam:
		return &exprNode{Kind: "path_lambda", DimName: x.DimName.String(), Body: encodeExpr(x.Body)}
	case *syntax.PathApp:
		return &exprNode{Kind: "path_app", Path: encodeExpr(x.Path), Dim: encodeDim(x.Dim)}
	case *syntax.SmoothPath:
		return &exprNode{Kind: "smooth_path", Order: x.Order, Type: encodeExpr(x.Type), Left: encodeExpr(x.Left), Right: encodeExpr(x.Right)}
	case *syntax.Comp:
		return &exprNode{Kind: "comp", Type: encodeExpr(x.Type), Base: encodeExpr(x.Base), Faces: encodeFaces(x.Faces)}
	case *syntax.Coe:
		return &exprNode{Kind: "coe", TypeFam: encodeExpr(x.TypeFam), From: encodeDim(x.From), To: encodeDim(x.To), Base: encodeExpr(x.Base)}
	case *syntax.HComp:
		return &exprNode{Kind: "hcomp", Type: encodeExpr(x.Type), Base: encodeExpr(x.Base), Faces: encodeFaces(x.Faces)}
	case *syntax.Glue:
		equivs := make([]glueEquivNode, len(x.Equivalences))
		for i, eq := range x.Equivalences {
			equivs[i] = glueEquivNode{Face: encodeFace(eq.Face), Type: *encodeExpr(eq.Type), Equivalence: *encodeExpr(eq.Equivalence)}
		}
		return &exprNode{Kind: "glue", Base: encodeExpr(x.Base), Equivalences: equivs}
	case *syntax.Diff:
		return &exprNode{Kind: "diff", Order: x.Order, Of: encodeExpr(x.Of)}
	case *syntax.Integral:
		return &exprNode{Kind: "integral", Of: encodeExpr(x.Of)}
	case *syntax.Taylor:
		return &exprNode{Kind: "taylor", Order: x.Order, Of: encodeExpr(x.Of), At: encodeExpr(x.At)}
	default:
		return &exprNode{Kind: "unknown"}
	}
}

// decodeExpr is encodeExpr's inverse.
func decodeExpr(n *exprNode) (syntax.Expr, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Kind {
	case "type":
		return &syntax.TypeExpr{Level: syntax.Level(n.Level)}, nil
	case "var":
		return &syntax.Var{Name: syntax.NewName(n.Name), Index: n.Index}, nil
	case "pi":
		dom, err := decodeExpr(n.Domain)
		if err != nil {
			return nil, err
		}
		cod, err := decodeExpr(n.Codomain)
		if err != nil {
			return nil, err
		}
		return &syntax.Pi{Name: syntax.NewName(n.Name), Domain: dom, Codomain: cod}, nil
	case "lambda":
		body, err := decodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.Lambda{Name: syntax.NewName(n.Name), Body: body}, nil
	case "app":
		fn, err := decodeExpr(n.Func)
		if err != nil {
			return nil, err
		}
		arg, err := decodeExpr(n.Arg)
		if err != nil {
			return nil, err
		}
		return &syntax.App{Func: fn, Arg: arg}, nil
	case "path":
		ty, err := decodeExpr(n.Type)
		if err != nil {
			return nil, err
		}
		l, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &syntax.Path{Type: ty, Left: l, Right: r}, nil
	case "path_lambda":
		body, err := decodeExpr(n.Body)
		if err != nil {
			return nil, err
		}
		return &syntax.PathLam{DimName: syntax.NewName(n.DimName), Body: body}, nil
	case "path_app":
		p, err := decodeExpr(n.Path)
		if err != nil {
			return nil, err
		}
		d, err := decodeDim(n.Dim)
		if err != nil {
			return nil, err
		}
		return &syntax.PathApp{Path: p, Dim: d}, nil
	case "smooth_path":
		ty, err := decodeExpr(n.Type)
		if err != nil {
			return nil, err
		}
		l, err := decodeExpr(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := decodeExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return &syntax.SmoothPath{Order: n.Order, Type: ty, Left: l, Right: r}, nil
	case "comp":
		ty, err := decodeExpr(n.Type)
		if err != nil {
			return nil, err
		}
		base, err := decodeExpr(n.Base)
		if err != nil {
			return nil, err
		}
		faces, err := decodeFaces(n.Faces)
		if err != nil {
			return nil, err
		}
		return &syntax.Comp{Type: ty, Base: base, Faces: faces}, nil
	case "coe":
		fam, err := decodeExpr(n.TypeFam)
		if err != nil {
			return nil, err
		}
		from, err := decodeDim(n.From)
		if err != nil {
			return nil, err
		}
		to, err := decodeDim(n.To)
		if err != nil {
			return nil, err
		}
		base, err := decodeExpr(n.Base)
		if err != nil {
			return nil, err
		}
		return &syntax.Coe{TypeFam: fam, From: from, To: to, Base: base}, nil
	case "hcomp":
		ty, err := decodeExpr(n.Type)
		if err != nil {
			return nil, err
		}
		base, err := decodeExpr(n.Base)
		if err != nil {
			return nil, err
		}
		faces, err := decodeFaces(n.Faces)
		if err != nil {
			return nil, err
		}
		return &syntax.HComp{Type: ty, Base: base, Faces: faces}, nil
	case "glue":
		base, err := decodeExpr(n.Base)
		if err != nil {
			return nil, err
		}
		equivs := make([]syntax.GlueEquiv, len(n.Equivalences))
		for i, eq := range n.Equivalences {
			face, err := decodeFace(eq.Face)
			if err != nil {
				return nil, err
			}
			ty, err := decodeExpr(&eq.Type)
			if err != nil {
				return nil, err
			}
			wit, err := decodeExpr(&eq.Equivalence)
			if err != nil {
				return nil, err
			}
			equivs[i] = syntax.GlueEquiv{Face: face, Type: ty, Equivalence: wit}
		}
		return &syntax.Glue{Base: base, Equivalences: equivs}, nil
	case "diff":
		of, err := decodeExpr(n.Of)
		if err != nil {
			return nil, err
		}
		return &syntax.Diff{Order: n.Order, Of: of}, nil
	case "integral":
		of, err := decodeExpr(n.Of)
		if err != nil {
			return nil, err
		}
		return &syntax.Integral{Of: of}, nil
	case "taylor":
		of, err := decodeExpr(n.Of)
		if err != nil {
			return nil, err
		}
		at, err := decodeExpr(n.At)
		if err != nil {
			return nil, err
		}
		return &syntax.Taylor{Order: n.Order, Of: of, At: at}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %q", n.Kind)
	}
}

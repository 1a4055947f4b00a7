package export

import (
	"encoding/json"

	"github.com/ipcard-tools/ipcard/internal/document"
	"github.com/ipcard-tools/ipcard/internal/model"
)

// Flatten walks a validated document tree depth-first in key insertion
// order and produces the row sequence shared by every exporter.
//
// Invariants:
//   - every scalar leaf produces exactly one row, so len(rows) equals
//     doc.LeafCount();
//   - containers produce no rows of their own — their label becomes the
//     Group of their descendants' rows, with ancestor labels joined by
//     " / " for deeper nesting;
//   - Span is stamped on the first row of each run of rows sharing a
//     Group (run length), 0 on continuations, 1 on ungrouped rows.
//
// All exporters consuming the same []Row is what guarantees the ODS,
// LaTeX, and terminal outputs show identical rows in identical order.
func Flatten(doc *document.Node) []model.Row {
	var rows []model.Row
	walk(doc, "", &rows)
	stampSpans(rows)
	return rows
}

// walk appends one row per leaf reachable from node. group is the joined
// label path of the enclosing containers.
func walk(node *document.Node, group string, rows *[]model.Row) {
	switch node.Kind {
	case document.KindMapping:
		for _, key := range node.Keys {
			child := node.Children[key]
			if child.Kind == document.KindScalar {
				*rows = append(*rows, leafRow(child, group, key))
			} else {
				walk(child, joinGroup(group, key), rows)
			}
		}

	case document.KindSequence:
		for i, item := range node.Items {
			label := model.SequenceLabel(i)
			if item.Kind == document.KindScalar {
				*rows = append(*rows, leafRow(item, group, label))
			} else {
				walk(item, joinGroup(group, label), rows)
			}
		}

	case document.KindScalar:
		// A bare scalar document. Degenerate but legal JSON.
		*rows = append(*rows, leafRow(node, group, "value"))
	}
}

// leafRow builds the row for one scalar leaf.
func leafRow(node *document.Node, group, label string) model.Row {
	_, numeric := node.Value.(json.Number)
	return model.Row{
		Group:   group,
		Label:   label,
		Value:   node.ScalarString(),
		Numeric: numeric,
	}
}

// joinGroup extends a group label path by one container label.
func joinGroup(group, label string) string {
	if group == "" {
		return label
	}
	return group + " / " + label
}

// stampSpans assigns Span values in place: the first row of each run of
// consecutive rows with the same non-empty Group gets the run length,
// continuations get 0, ungrouped rows get 1.
func stampSpans(rows []model.Row) {
	for i := 0; i < len(rows); {
		if rows[i].Group == "" {
			rows[i].Span = 1
			i++
			continue
		}
		j := i + 1
		for j < len(rows) && rows[j].Group == rows[i].Group {
			j++
		}
		rows[i].Span = j - i
		for k := i + 1; k < j; k++ {
			rows[k].Span = 0
		}
		i = j
	}
}

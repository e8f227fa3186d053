package structtree

import (
	"errors"
	"fmt"

	"github.com/tsawler/sigil/core"
	"github.com/tsawler/sigil/document"
)

var (
	// ErrNoRoot is returned by node operations before InitRoot has run.
	ErrNoRoot = errors.New("structure root not initialized")

	// ErrBadRoot is returned when an existing structure root is not a
	// recognized dictionary shape. The document is left untouched.
	ErrBadRoot = errors.New("existing structure root has unrecognized shape")
)

// Node is a handle to one structure element created in this session.
type Node struct {
	ID   int
	Role string
	Ref  core.IndirectRef
	Dict core.Dict

	parent core.Dict
}

// Attrs are the optional attributes a node can carry. Empty strings are
// treated as absent.
type Attrs struct {
	Title      string
	AltText    string
	ActualText string
	Language   string
}

// Spec describes one node in a batch creation request. ParentID zero means
// root-attached; node ids start at one.
type Spec struct {
	Type       string
	Title      string
	AltText    string
	ActualText string
	Language   string
	ParentID   int
}

// Diagnostic records one recoverable problem during a node operation.
type Diagnostic struct {
	NodeID  int
	Message string
}

func (d Diagnostic) String() string {
	if d.NodeID == 0 {
		return d.Message
	}
	return fmt.Sprintf("node %d: %s", d.NodeID, d.Message)
}

// Builder creates and wires structure nodes in one document. A builder is
// single-session state and is not safe for concurrent use.
type Builder struct {
	doc     document.Document
	root    core.Dict
	rootRef core.IndirectRef
	nodes   map[int]*Node
	order   []int
	nextID  int
}

// NewBuilder creates an uninitialized builder for doc. Call InitRoot before
// any node operation.
func NewBuilder(doc document.Document) *Builder {
	return &Builder{
		doc:    doc,
		nodes:  make(map[int]*Node),
		nextID: 1,
	}
}

// Ready reports whether the structure root has been initialized.
func (b *Builder) Ready() bool {
	return b.root != nil
}

// InitRoot creates the document's structure tree root, or adopts an existing
// one. Adoption is additive only: standard role-map entries missing from the
// existing map are added, existing mappings are never overwritten, and a
// child array is ensured. An existing root that is not a dictionary fails
// with ErrBadRoot before any mutation.
func (b *Builder) InitRoot() error {
	if b.root != nil {
		return nil
	}

	catalog := b.doc.Catalog()
	existing := catalog.Get("StructTreeRoot")
	if existing == nil {
		root := core.Dict{
			"Type":    core.Name("StructTreeRoot"),
			"RoleMap": StandardRoleMap(),
			"K":       core.Array{},
		}
		ref := b.doc.MakeIndirect(root)
		catalog.Set("StructTreeRoot", ref)
		b.root = root
		b.rootRef = ref
		return nil
	}

	var root core.Dict
	var rootRef core.IndirectRef
	switch obj := existing.(type) {
	case core.Dict:
		root = obj
		rootRef = b.doc.MakeIndirect(root)
		catalog.Set("StructTreeRoot", rootRef)
	case core.IndirectRef:
		resolved, ok := b.doc.Resolve(obj)
		if !ok {
			return fmt.Errorf("%w: dangling reference %s", ErrBadRoot, obj)
		}
		dict, ok := resolved.(core.Dict)
		if !ok {
			return fmt.Errorf("%w: %s", ErrBadRoot, resolved.Type())
		}
		root = dict
		rootRef = obj
	default:
		return fmt.Errorf("%w: %s", ErrBadRoot, existing.Type())
	}

	roleMap, ok := root.GetDict("RoleMap")
	if !ok {
		if root.Has("RoleMap") {
			return fmt.Errorf("%w: RoleMap is not a dictionary", ErrBadRoot)
		}
		roleMap = core.Dict{}
		root.Set("RoleMap", roleMap)
	}
	for key, target := range StandardRoleMap() {
		if !roleMap.Has(key) {
			roleMap.Set(key, target)
		}
	}

	if _, ok := root.GetArray("K"); !ok {
		if kid := root.Get("K"); kid != nil {
			// Single child stored bare; normalize to an array.
			root.Set("K", core.Array{kid})
		} else {
			root.Set("K", core.Array{})
		}
	}

	b.root = root
	b.rootRef = rootRef
	return nil
}

// CreateNode creates a structure element of the given type, validated
// against the role map, and attaches it as a root-level child.
func (b *Builder) CreateNode(nodeType string, attrs Attrs) (*Node, error) {
	if b.root == nil {
		return nil, ErrNoRoot
	}
	roleMap, _ := b.root.GetDict("RoleMap")
	if resolveRole(roleMap, nodeType) == "" {
		return nil, fmt.Errorf("structure type %q does not resolve to a standard role", nodeType)
	}

	dict := core.Dict{
		"Type": core.Name("StructElem"),
		"S":    core.Name(nodeType),
		"P":    b.rootRef,
		"K":    core.Array{},
	}
	if attrs.Title != "" {
		dict.Set("T", core.String(attrs.Title))
	}
	if attrs.AltText != "" {
		dict.Set("Alt", core.String(attrs.AltText))
	}
	if attrs.ActualText != "" {
		dict.Set("ActualText", core.String(attrs.ActualText))
	}
	if attrs.Language != "" {
		dict.Set("Lang", core.String(attrs.Language))
	}

	ref := b.doc.MakeIndirect(dict)
	node := &Node{
		ID:     b.nextID,
		Role:   nodeType,
		Ref:    ref,
		Dict:   dict,
		parent: b.root,
	}
	b.nextID++
	b.root.AppendToArray("K", ref)
	b.nodes[node.ID] = node
	b.order = append(b.order, node.ID)
	return node, nil
}

// Attach moves child under parent: the child is removed from its current
// parent's children and appended to parent's, and its parent entry is
// rewritten. Attaching a node twice to the same parent is a no-op move to
// the end.
func (b *Builder) Attach(parent, child *Node) error {
	if b.root == nil {
		return ErrNoRoot
	}
	if parent == nil || child == nil {
		return fmt.Errorf("attach requires both parent and child")
	}
	if parent == child {
		return fmt.Errorf("node %d cannot be its own parent", child.ID)
	}

	if kids, ok := child.parent.GetArray("K"); ok {
		child.parent.Set("K", kids.Without(child.Ref))
	}
	parent.Dict.AppendToArray("K", child.Ref)
	child.Dict.Set("P", parent.Ref)
	child.parent = parent.Dict
	return nil
}

// Node returns the session node with the given id.
func (b *Builder) Node(id int) (*Node, bool) {
	n, ok := b.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes created this session.
func (b *Builder) NodeCount() int {
	return len(b.nodes)
}

// CreateBatch creates one node per spec. A failed entry yields a nil handle
// and a diagnostic, never aborting the rest. Entries with a ParentID are
// re-parented after creation when the id names a node from this session; an
// unknown ParentID leaves the node root-attached.
func (b *Builder) CreateBatch(specs []Spec) ([]*Node, []Diagnostic) {
	nodes := make([]*Node, len(specs))
	var diags []Diagnostic

	for i, spec := range specs {
		node, err := b.CreateNode(spec.Type, Attrs{
			Title:      spec.Title,
			AltText:    spec.AltText,
			ActualText: spec.ActualText,
			Language:   spec.Language,
		})
		if err != nil {
			diags = append(diags, Diagnostic{Message: fmt.Sprintf("batch entry %d (%s): %v", i, spec.Type, err)})
			continue
		}
		nodes[i] = node

		if spec.ParentID != 0 {
			if parent, ok := b.nodes[spec.ParentID]; ok {
				if err := b.Attach(parent, node); err != nil {
					diags = append(diags, Diagnostic{NodeID: node.ID, Message: err.Error()})
				}
			}
		}
	}

	return nodes, diags
}

// AppendChild appends a raw child object, such as a marked-content
// reference dictionary, to a node's children. Existing children are kept.
func (b *Builder) AppendChild(node *Node, child core.Object) error {
	if b.root == nil {
		return ErrNoRoot
	}
	if node == nil {
		return fmt.Errorf("append requires a node")
	}
	if !node.Dict.AppendToArray("K", child) {
		return fmt.Errorf("node %d: K is not an array", node.ID)
	}
	return nil
}

// Status summarizes the state of the structure tree.
type Status struct {
	HasRoot     bool
	RoleMapSize int
	RootKids    int
	Nodes       int
}

func (s Status) String() string {
	if !s.HasRoot {
		return "no structure root"
	}
	return fmt.Sprintf("structure root with %d role-map entries, %d root children, %d session nodes",
		s.RoleMapSize, s.RootKids, s.Nodes)
}

// Status reports the current tree state without mutating anything.
func (b *Builder) Status() Status {
	if b.root == nil {
		return Status{}
	}
	s := Status{HasRoot: true, Nodes: len(b.nodes)}
	if roleMap, ok := b.root.GetDict("RoleMap"); ok {
		s.RoleMapSize = len(roleMap)
	}
	if kids, ok := b.root.GetArray("K"); ok {
		s.RootKids = len(kids)
	}
	return s
}

// Verify walks the tree from the root and reports nodes that are
// unreachable or whose parent entry disagrees with their position.
func (b *Builder) Verify() []Diagnostic {
	if b.root == nil {
		return []Diagnostic{{Message: ErrNoRoot.Error()}}
	}

	reachable := make(map[string]bool)
	b.walk(b.root, reachable)

	var diags []Diagnostic
	for _, id := range b.order {
		node := b.nodes[id]
		if !reachable[node.Ref.String()] {
			diags = append(diags, Diagnostic{NodeID: id, Message: "unreachable from structure root"})
		}
		if kids, ok := node.parent.GetArray("K"); ok {
			found := false
			for _, kid := range kids {
				if kid.String() == node.Ref.String() {
					found = true
					break
				}
			}
			if !found {
				diags = append(diags, Diagnostic{NodeID: id, Message: "missing from parent child array"})
			}
		}
	}
	return diags
}

func (b *Builder) walk(dict core.Dict, reachable map[string]bool) {
	kids, ok := dict.GetArray("K")
	if !ok {
		return
	}
	for _, kid := range kids {
		ref, ok := kid.(core.IndirectRef)
		if !ok {
			continue
		}
		key := ref.String()
		if reachable[key] {
			continue
		}
		reachable[key] = true
		if obj, ok := b.doc.Resolve(ref); ok {
			if child, ok := obj.(core.Dict); ok {
				b.walk(child, reachable)
			}
		}
	}
}

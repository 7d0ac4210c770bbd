package domain

import "sort"

// Category Model
type Category struct {
	ID       uint       `gorm:"primaryKey"`          // Primary key
	Name     string     `gorm:"size:255;not null"`   // Category name
	OwnerID  uint       `gorm:"not null;index"`      // Foreign key to User
	Owner    *User      `gorm:"foreignKey:OwnerID"`  // Owning user
	ParentID *uint      `gorm:"index"`               // Optional parent category
	Children []Category `gorm:"foreignKey:ParentID"` // Direct children, only loaded on nested fetch
}

// CategoryNode is a category with its subtree attached
type CategoryNode struct {
	Category
	Nodes []*CategoryNode
}

// WouldCycle reports whether making parentID the parent of id would close a loop.
// parents maps every category id of one owner to its parent id.
func WouldCycle(parents map[uint]*uint, id, parentID uint) bool {
	seen := make(map[uint]bool)
	for cur := parentID; ; {
		if cur == id {
			return true
		}
		if seen[cur] {
			// Pre-existing loop that does not include id
			return false
		}
		seen[cur] = true
		next, ok := parents[cur]
		if !ok || next == nil {
			return false
		}
		cur = *next
	}
}

// BuildTree nests a flat list of categories by parent id.
// Categories whose parent is missing from the list are treated as roots.
func BuildTree(categories []Category) []*CategoryNode {
	nodes := make(map[uint]*CategoryNode, len(categories))
	for _, c := range categories {
		c.Children = nil
		nodes[c.ID] = &CategoryNode{Category: c}
	}
	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok && *c.ParentID != c.ID {
				parent.Nodes = append(parent.Nodes, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	sortNodes(roots)
	return roots
}

func sortNodes(nodes []*CategoryNode) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	for _, n := range nodes {
		sortNodes(n.Nodes)
	}
}

package services

import (
	"gorm.io/gorm"

	"tasknest/app/models"
)

// nestTasks groups rows by parent and returns the top-level tasks with
// their descendants nested. Rows must contain every descendant of the
// roots (one list, or one subtree).
func nestTasks(rows []models.Task) []models.TaskNode {
	byParent := make(map[uint][]models.Task)
	var roots []models.Task
	for _, t := range rows {
		if t.ParentID == nil {
			roots = append(roots, t)
		} else {
			byParent[*t.ParentID] = append(byParent[*t.ParentID], t)
		}
	}
	nodes := make([]models.TaskNode, 0, len(roots))
	for _, r := range roots {
		nodes = append(nodes, buildNode(r, byParent))
	}
	return nodes
}

func buildNode(t models.Task, byParent map[uint][]models.Task) models.TaskNode {
	children := byParent[t.ID]
	node := models.TaskNode{Task: t, Children: make([]models.TaskNode, 0, len(children))}
	for _, c := range children {
		node.Children = append(node.Children, buildNode(c, byParent))
	}
	return node
}

// subtreeRows returns root plus every descendant, breadth-first. Rows at
// the same level come back in creation order.
func subtreeRows(tx *gorm.DB, root *models.Task) ([]models.Task, error) {
	rows := []models.Task{*root}
	frontier := []uint{root.ID}
	for len(frontier) > 0 {
		var level []models.Task
		if err := tx.Where("parent_id IN ?", frontier).Order("id").Find(&level).Error; err != nil {
			return nil, err
		}
		if len(level) == 0 {
			break
		}
		rows = append(rows, level...)
		next := make([]uint, 0, len(level))
		for _, t := range level {
			next = append(next, t.ID)
		}
		frontier = next
	}
	return rows, nil
}

func taskIDs(rows []models.Task) []uint {
	ids := make([]uint, 0, len(rows))
	for _, t := range rows {
		ids = append(ids, t.ID)
	}
	return ids
}

func maxRowDepth(rows []models.Task) int {
	max := 0
	for _, t := range rows {
		if t.Depth > max {
			max = t.Depth
		}
	}
	return max
}

// preorder flattens a node into root-first order.
func preorder(node models.TaskNode, out *[]models.Task) {
	*out = append(*out, node.Task)
	for _, c := range node.Children {
		preorder(c, out)
	}
}

package style

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode 树形视图节点
type TreeNode struct {
	Text     string
	Children []TreeNode
}

// PrintTree 渲染树形结构，inspect 命令用它展示 命名空间 -> 文件 -> 缺失文档的声明
func PrintTree(w io.Writer, root TreeNode) error {
	rootStyle := lipgloss.NewStyle().Foreground(ColorAccentPrimary).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(ColorText)
	enumeratorStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	t := buildTree(root).
		Enumerator(tree.RoundedEnumerator).
		RootStyle(rootStyle).
		ItemStyle(itemStyle).
		EnumeratorStyle(enumeratorStyle)

	_, err := fmt.Fprintln(w, t)
	return err
}

func buildTree(node TreeNode) *tree.Tree {
	t := tree.New().Root(node.Text)
	for _, child := range node.Children {
		if len(child.Children) == 0 {
			t.Child(child.Text)
			continue
		}
		t.Child(buildTree(child))
	}
	return t
}

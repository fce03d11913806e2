package models

// ============================================================
// Scene document (wire format)
// ============================================================

// SceneObject одна запись в экспортированной сцене.
// Type: box | sphere | cylinder | extruded | group; неизвестные типы
// при импорте читаются как box.
type SceneObject struct {
	Type     string        `json:"type"`
	Position [3]float64    `json:"position"`
	Rotation [3]float64    `json:"rotation"`
	Scale    [3]float64    `json:"scale"`
	Color    string        `json:"color"`
	Profile  [][2]float64  `json:"profile,omitempty"`  // extruded: точки (x, z) относительно центроида
	Depth    float64       `json:"depth,omitempty"`    // extruded: глубина выдавливания
	Children []SceneObject `json:"children,omitempty"` // group: позиции детей относительно группы
}

type SceneMetadata struct {
	Version     string `json:"version"`
	ExportDate  string `json:"exportDate"`
	ObjectCount int    `json:"objectCount"`
}

type SceneDocument struct {
	Objects  []SceneObject `json:"objects"`
	Metadata SceneMetadata `json:"metadata"`
}

package codec

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"scene-editor/internal/editor/models"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
)

// ============================================================
// Scene Codec
// ============================================================

// Version 1.0 не хранил профиль выдавленных тел и при импорте подменял
// их боксом. 1.1 пишет profile + depth; старые документы без профиля
// по-прежнему читаются с бокс-заглушкой.
const Version = "1.1"

type Codec struct {
	version string
}

func New() *Codec {
	return &Codec{version: Version}
}

// ============================================================
// Serialize
// ============================================================

func (c *Codec) Serialize(entities []*models.Entity) *models.SceneDocument {
	objects := make([]models.SceneObject, 0, len(entities))
	for _, e := range entities {
		objects = append(objects, c.toObject(e))
	}
	return &models.SceneDocument{
		Objects: objects,
		Metadata: models.SceneMetadata{
			Version:     c.version,
			ExportDate:  time.Now().UTC().Format(time.RFC3339),
			ObjectCount: len(objects),
		},
	}
}

func (c *Codec) toObject(e *models.Entity) models.SceneObject {
	obj := models.SceneObject{
		Position: [3]float64{e.Transform.Position.X, e.Transform.Position.Y, e.Transform.Position.Z},
		Rotation: [3]float64{e.Transform.Rotation.X, e.Transform.Rotation.Y, e.Transform.Rotation.Z},
		Scale:    [3]float64{e.Transform.Scale.X, e.Transform.Scale.Y, e.Transform.Scale.Z},
		Color:    e.Color,
	}
	switch e.Kind {
	case models.KindPrimitive:
		obj.Type = e.Primitive.Type.String()
	case models.KindExtruded:
		obj.Type = "extruded"
		obj.Depth = e.Extruded.Depth
		obj.Profile = make([][2]float64, 0, len(e.Extruded.Profile))
		for _, p := range e.Extruded.Profile {
			obj.Profile = append(obj.Profile, [2]float64{p.X, p.Z})
		}
	case models.KindGroup:
		obj.Type = "group"
		obj.Children = make([]models.SceneObject, 0, len(e.Group.Children))
		for _, child := range e.Group.Children {
			obj.Children = append(obj.Children, c.toObject(child))
		}
	}
	return obj
}

// ============================================================
// Deserialize
// ============================================================

// Deserialize документ → сущности, все или ничего. Неизвестный type
// читается как box, чтобы импорт переживал дрейф формата.
func (c *Codec) Deserialize(doc *models.SceneDocument) ([]*models.Entity, error) {
	if doc == nil {
		return nil, models.Formatf("document is nil")
	}
	entities := make([]*models.Entity, 0, len(doc.Objects))
	for i, obj := range doc.Objects {
		e, err := c.fromObject(obj)
		if err != nil {
			return nil, models.Formatf("object %d: %v", i, err)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

func (c *Codec) fromObject(obj models.SceneObject) (*models.Entity, error) {
	if obj.Scale[0] == 0 || obj.Scale[1] == 0 || obj.Scale[2] == 0 {
		return nil, models.Formatf("zero scale component")
	}

	e := &models.Entity{
		ID: uuid.NewString(),
		Transform: models.Transform{
			Position: models.Vec3{X: obj.Position[0], Y: obj.Position[1], Z: obj.Position[2]},
			Rotation: models.Vec3{X: obj.Rotation[0], Y: obj.Rotation[1], Z: obj.Rotation[2]},
			Scale:    models.Vec3{X: obj.Scale[0], Y: obj.Scale[1], Z: obj.Scale[2]},
		},
		Color: obj.Color,
	}

	switch obj.Type {
	case "extruded":
		if len(obj.Profile) == 0 {
			// Документ версии 1.0: профиль утерян, остается бокс
			e.Kind = models.KindPrimitive
			e.Primitive = &models.PrimitiveData{Type: models.PrimitiveBox}
			return e, nil
		}
		if len(obj.Profile) < 3 {
			return nil, models.Formatf("extruded profile has %d points", len(obj.Profile))
		}
		if obj.Depth <= 0 {
			return nil, models.Formatf("extruded depth %v is not positive", obj.Depth)
		}
		profile := make([]models.Vec3, 0, len(obj.Profile))
		for _, p := range obj.Profile {
			profile = append(profile, models.Vec3{X: p[0], Z: p[1]})
		}
		e.Kind = models.KindExtruded
		e.Extruded = &models.ExtrudedData{Profile: profile, Depth: obj.Depth}
	case "group":
		children := make([]*models.Entity, 0, len(obj.Children))
		for _, co := range obj.Children {
			child, err := c.fromObject(co)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		e.Kind = models.KindGroup
		e.Group = &models.GroupData{Children: children}
	default:
		// box, sphere, cylinder; все неизвестное сводится к box
		e.Kind = models.KindPrimitive
		e.Primitive = &models.PrimitiveData{Type: models.ParsePrimitiveType(obj.Type)}
	}
	return e, nil
}

// ============================================================
// Bytes in/out
// ============================================================

func (c *Codec) Encode(entities []*models.Entity) ([]byte, error) {
	return json.MarshalIndent(c.Serialize(entities), "", "  ")
}

func (c *Codec) Decode(data []byte) ([]*models.Entity, error) {
	var doc models.SceneDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, models.Formatf("invalid scene JSON: %v", err)
	}
	return c.Deserialize(&doc)
}

// EncodeGzip сжатый документ для хранения в библиотеке сцен.
func (c *Codec) EncodeGzip(entities []*models.Entity) ([]byte, error) {
	raw, err := c.Encode(entities)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) DecodeGzip(data []byte) ([]*models.Entity, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, models.Formatf("invalid gzip stream: %v", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, models.Formatf("read gzip stream: %v", err)
	}
	return c.Decode(raw)
}

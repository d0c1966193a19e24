package world

import (
	"fmt"

	"github.com/Afrovis/castle-wars/internal/vec"
)

// BlockID — поколенческий дескриптор блока.
// Индекс указывает на слот арены, поколение защищает от использования
// дескриптора после удаления блока. Ядро никогда не разыменовывает
// дескриптор напрямую, только сравнивает.
type BlockID struct {
	Index uint32
	Gen   uint32
}

// IsValid сообщает, может ли дескриптор указывать на блок.
// Нулевое значение BlockID невалидно: поколения начинаются с 1.
func (id BlockID) IsValid() bool {
	return id.Gen != 0
}

// String возвращает строковое представление дескриптора
func (id BlockID) String() string {
	return fmt.Sprintf("block(%d:%d)", id.Index, id.Gen)
}

// Block представляет собой блок в мире редактора.
// Position — центр единичного куба на полуцелой сетке
// (n+0.5 по каждой оси); позиция блока никогда не изменяется.
type Block struct {
	ID       BlockID
	Position vec.Vec3Float
}

// Cell возвращает ячейку сетки, занимаемую блоком
func (b Block) Cell() vec.Vec3 {
	return vec.CellOf(b.Position)
}

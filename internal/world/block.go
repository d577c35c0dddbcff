package world

// BlockType identifies what occupies a chunk cell.
type BlockType uint16

const (
	BlockTypeAir BlockType = iota
	BlockTypeDirt
	BlockTypeStone
	BlockTypeGrass
)

var blockNames = [...]string{
	BlockTypeAir:   "air",
	BlockTypeDirt:  "dirt",
	BlockTypeStone: "stone",
	BlockTypeGrass: "grass",
}

func (t BlockType) String() string {
	if int(t) < len(blockNames) {
		return blockNames[t]
	}
	return "unknown"
}

// Block is a single chunk cell.
type Block struct {
	Type BlockType
}

var (
	BlockAir   = Block{Type: BlockTypeAir}
	BlockDirt  = Block{Type: BlockTypeDirt}
	BlockStone = Block{Type: BlockTypeStone}
	BlockGrass = Block{Type: BlockTypeGrass}
)

// IsSolid reports whether the block occupies its cell.
func (b Block) IsSolid() bool {
	return b.Type != BlockTypeAir
}

// Textures returns the texture set used to draw the block. Air has none.
func (b Block) Textures() (TextureSet, bool) {
	switch b.Type {
	case BlockTypeDirt:
		return Uniform{Texture: TextureDirt}, true
	case BlockTypeStone:
		return Uniform{Texture: TextureStone}, true
	case BlockTypeGrass:
		return SideTopBottom{Side: TextureGrassSide, Top: TextureGrassTop, Bottom: TextureDirt}, true
	default:
		return nil, false
	}
}

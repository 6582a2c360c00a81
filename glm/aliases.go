package glm

type Vec4f = Vec4[float32]

type Vec2u = Vec2[uint32]

package domain

// Palette is the fixed set of badge colours a skill can use.
var Palette = []string{
	"bg-indigo-500",
	"bg-green-500",
	"bg-pink-500",
	"bg-yellow-500",
	"bg-blue-500",
	"bg-purple-500",
	"bg-red-500",
}

type Skill struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type SkillInput struct {
	Name  string `form:"name" json:"name" binding:"required,max=60"`
	Color string `form:"color" json:"color" binding:"required,oneof=bg-indigo-500 bg-green-500 bg-pink-500 bg-yellow-500 bg-blue-500 bg-purple-500 bg-red-500"`
}

func (in SkillInput) Validate() error {
	return Validate(in)
}

func NewSkill(id string, in SkillInput) Skill {
	return Skill{ID: id, Name: in.Name, Color: in.Color}
}

package town

import "fmt"

// NoLocation marks a character that is not currently inside any location.
const NoLocation = -1

// Character is one resident of the town. The simulation mutates it between
// phases; clue generation only reads it, apart from HasGeneratedGhostClues.
type Character struct {
	Index      int
	Name       string
	IsAlive    bool
	IsWerewolf bool

	DeathLocation   int
	DiedOnDay       int
	CurrentLocation int

	Descriptors map[Descriptor]string
	Clothing    ClothingCondition

	HasGeneratedGhostClues bool
}

func (c *Character) String() string {
	return fmt.Sprintf("[%d] %s", c.Index, c.Name)
}

// WorkType returns the occupation value, empty when the character has no work.
func (c *Character) WorkType() string {
	return c.Descriptors[Occupation]
}

func (c *Character) HasOccupation() bool {
	return c.WorkType() != ""
}

func (c *Character) Descriptor(d Descriptor) string {
	return c.Descriptors[d]
}

func (c *Character) Kill(location, day int) {
	c.IsAlive = false
	c.DeathLocation = location
	c.DiedOnDay = day
	c.CurrentLocation = NoLocation
}

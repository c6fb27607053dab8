package town

import (
	"fmt"
	"strings"
)

// Descriptor is a category of identifying trait a ghost can reveal.
type Descriptor int

const (
	InvalidDescriptor Descriptor = iota - 1
	Occupation
	Facial
	Clothing
	Hairstyle
)

var descriptorNames = map[Descriptor]string{
	Occupation: "occupation",
	Facial:     "facial",
	Clothing:   "clothing",
	Hairstyle:  "hairstyle",
}

func AllDescriptors() []Descriptor {
	return []Descriptor{Occupation, Facial, Clothing, Hairstyle}
}

func (d Descriptor) String() string {
	if name, ok := descriptorNames[d]; ok {
		return name
	}
	return "invalid"
}

func ParseDescriptor(name string) (Descriptor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for d, n := range descriptorNames {
		if n == key {
			return d, nil
		}
	}
	return InvalidDescriptor, fmt.Errorf("unknown descriptor: %q", name)
}

// DescriptorsExcluding returns AllDescriptors in order, minus the excluded ones.
func DescriptorsExcluding(exclude ...Descriptor) []Descriptor {
	out := make([]Descriptor, 0, len(descriptorNames))
	for _, d := range AllDescriptors() {
		if !containsDescriptor(exclude, d) {
			out = append(out, d)
		}
	}
	return out
}

func containsDescriptor(list []Descriptor, target Descriptor) bool {
	for _, d := range list {
		if d == target {
			return true
		}
	}
	return false
}

type ClothingCondition int

const (
	ConditionClean ClothingCondition = iota
	ConditionTorn
	ConditionBloody
)

func (c ClothingCondition) String() string {
	switch c {
	case ConditionTorn:
		return "torn"
	case ConditionBloody:
		return "bloody"
	default:
		return "clean"
	}
}

func ParseClothingCondition(name string) (ClothingCondition, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "clean":
		return ConditionClean, nil
	case "torn":
		return ConditionTorn, nil
	case "bloody":
		return ConditionBloody, nil
	default:
		return ConditionClean, fmt.Errorf("unknown clothing condition: %q", name)
	}
}

package services

import (
	"math/rand"
)

// spaceFacts is the static trivia table for /spacefact.
var spaceFacts = []string{
	"One day on Venus is longer than one year on Venus — it takes 243 Earth days to rotate but only 225 to orbit the Sun.",
	"Neutron stars can spin up to 600 times per second.",
	"The ISS orbits Earth at about 28,000 km/h, completing one orbit roughly every 90 minutes.",
	"There are more stars in the observable universe than grains of sand on all of Earth's beaches.",
	"The footprints on the Moon will likely remain for millions of years — there's no wind to erase them.",
	"Jupiter's Great Red Spot is a storm larger than Earth that has raged for at least 190 years.",
	"Light from the Sun takes about 8 minutes and 20 seconds to reach Earth.",
	"Saturn would float in water — its average density is less than 1 g/cm³.",
	"A teaspoon of neutron star material would weigh about 6 billion tonnes.",
	"The Milky Way and Andromeda galaxies will collide in about 4.5 billion years.",
	"Olympus Mons on Mars is the tallest volcano in the solar system, nearly three times the height of Everest.",
	"Space is not completely empty — there's about one atom per cubic centimeter between stars.",
	"The Sun accounts for 99.86% of the mass of the solar system.",
	"Mercury and Venus are the only planets in our solar system with no moons.",
	"If two pieces of the same metal touch in space, they weld together permanently — cold welding.",
	"The coldest known place in the universe is the Boomerang Nebula at just 1 kelvin.",
	"Earth is the only planet not named after a god.",
	"A year on Neptune lasts 165 Earth years — it has completed one orbit since its discovery in 1846.",
}

// TriviaService serves random astronomy facts.
type TriviaService struct {
	rng *rand.Rand
}

// NewTriviaService creates a trivia service with the given random source.
// Pass rand.New(rand.NewSource(...)) for deterministic tests.
func NewTriviaService(rng *rand.Rand) *TriviaService {
	return &TriviaService{rng: rng}
}

// RandomFact returns one fact from the table.
func (svc *TriviaService) RandomFact() string {
	return spaceFacts[svc.rng.Intn(len(spaceFacts))]
}

// FactCount reports the size of the fact table.
func (svc *TriviaService) FactCount() int {
	return len(spaceFacts)
}

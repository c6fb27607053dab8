package config

const DefaultProjectConfigYAML = `project: %s
version: 1
population: population.yaml

database:
  dsn: sqlite://cluegen.db

# Chances are percentages.
tuning:
  character_lie_chance: 10
  werewolf_lie_chance: 40
  ghost_lie_chance: 20
  ghost_lie_chance_falloff: 5
  ghost_lie_chance_falloff_per_day: 2
  allow_late_game_unique_identifiers: true
  deaths_to_classify_late_game: 4

pacing:
  yield: 0s
`

const DefaultPopulationYAML = `version: 1

locations:
  - tavern
  - church
  - market
  - mill
  - docks
  - smithy

characters:
  - name: Agnes
    descriptors: { occupation: baker, facial: freckles, clothing: apron, hairstyle: bun }
  - name: Bram
    werewolf: true
    descriptors: { occupation: miller, facial: beard, clothing: apron, hairstyle: short }
  - name: Cora
    descriptors: { occupation: miller, facial: freckles, clothing: cloak, hairstyle: braid }
  - name: Dietrich
    descriptors: { occupation: smith, facial: beard, clothing: leather, hairstyle: short }
  - name: Elsa
    descriptors: { facial: scar, clothing: cloak, hairstyle: braid }
  - name: Fenwick
    descriptors: { occupation: fisher, facial: scar, clothing: leather, hairstyle: bald }
  - name: Greta
    descriptors: { occupation: baker, facial: spectacles, clothing: apron, hairstyle: bun }
  - name: Hugo
    descriptors: { facial: spectacles, clothing: cloak, hairstyle: bald }
`

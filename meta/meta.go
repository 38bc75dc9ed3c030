// meta/meta.go
package meta

// NUMBER_OF_GAMES defines how many games a run simulates.
const NUMBER_OF_GAMES = 3_000

// NUMBER_OF_PLAYERS defines the number of seats at the table.
const NUMBER_OF_PLAYERS = 5

// NUMBER_OF_COLUMNS defines the initial width of a grid.
const NUMBER_OF_COLUMNS = 4

// NUMBER_OF_ROWS defines the height of a grid.
const NUMBER_OF_ROWS = 3

// SCORE_ENDING_GAME ends a game once any player's game score reaches it.
const SCORE_ENDING_GAME = 100

// PLAYER_0_PERCENT_WIN_REQUIRED is how much more the primary player should win than the average of the others.
const PLAYER_0_PERCENT_WIN_REQUIRED = 10.0

// PRIMARY_PLAYER is the seat of the strategy under test.
const PRIMARY_PLAYER = 0

// MAX_TURNS_PER_ROUND stops a round whose strategies never reveal their grid.
const MAX_TURNS_PER_ROUND = 10_000

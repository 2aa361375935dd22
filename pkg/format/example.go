package format

// ExampleBlock is the structured block shown to users as the input template.
// Parse accepts it.
const ExampleBlock = `Anime Title | Alternative Title

‣ Genres : Action, Sci-Fi
‣ Type : TV
‣ Average Rating : 82
‣ Status : FINISHED
‣ First aired : 2024-4-13
‣ Last aired : 2024-6-29
‣ Runtime : 24 minutes
‣ No of episodes : 12

‣ Synopsis : Your anime synopsis here...

(Source: Some Source)`

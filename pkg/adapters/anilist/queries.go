package anilist

const mediaFields = `
      id
      format
      title {
        romaji
        english
      }
      episodes
      status
      startDate {
        year
        month
        day
      }
      endDate {
        year
        month
        day
      }
      duration
      averageScore
      genres
      description
      siteUrl
      coverImage {
        large
        extraLarge
      }`

const searchQuery = `query ($search: String, $page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    pageInfo {
      total
      currentPage
      lastPage
      hasNextPage
    }
    media(search: $search, type: ANIME) {` + mediaFields + `
    }
  }
}`

const mediaQuery = `query ($id: Int) {
  Media(id: $id, type: ANIME) {` + mediaFields + `
  }
}`

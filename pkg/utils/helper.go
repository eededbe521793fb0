package utils

/**************************************************************************************************
** Contains checks if a string is present in a slice of strings.
**
** @param list - Slice of strings to search
** @param s - String to search for
** @return bool - True if string is present in slice, false otherwise
**************************************************************************************************/
func Contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

/**************************************************************************************************
** RemoveEmptyStrings removes all empty strings from a string array and returns a new array
** without the empty strings. Preserves the order of non-empty strings.
**
** @param arr - Array to process
** @return []string - New array containing only non-empty strings
**************************************************************************************************/
func RemoveEmptyStrings(arr []string) []string {
	result := make([]string, 0, len(arr))

	for _, str := range arr {
		if str != "" {
			result = append(result, str)
		}
	}

	return result
}
